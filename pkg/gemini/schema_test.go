package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twacha/skincare-assistant/pkg/domain"
)

func TestParseAnalysis(t *testing.T) {
	data := []byte(`{
		"condition_name": "Eczema",
		"confidence_score": 82,
		"severity": "Moderate",
		"description": "Dry, inflamed patches.",
		"symptoms_observed": ["redness", "scaling"],
		"recommendations": ["moisturize"],
		"treatment_options": ["topical steroids"]
	}`)

	result, err := parseAnalysis(data)
	require.NoError(t, err)

	assert.Equal(t, "Eczema", result.ConditionName)
	assert.Equal(t, float64(82), result.ConfidenceScore)
	assert.Equal(t, domain.SeverityModerate, result.Severity)
	assert.Equal(t, []string{"redness", "scaling"}, result.SymptomsObserved)
}

func TestParseAnalysis_ClampsConfidence(t *testing.T) {
	tests := []struct {
		name     string
		score    string
		expected float64
	}{
		{"above range", "140", 100},
		{"below range", "-5", 0},
		{"in range", "55.5", 55.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := []byte(`{"condition_name":"x","confidence_score":` + test.score + `,"severity":"Mild","description":"d"}`)

			result, err := parseAnalysis(data)
			require.NoError(t, err)
			assert.Equal(t, test.expected, result.ConfidenceScore)
		})
	}
}

func TestParseAnalysis_RejectsBadPayloads(t *testing.T) {
	_, err := parseAnalysis([]byte(`not json at all`))
	assert.Error(t, err)

	_, err = parseAnalysis([]byte(`{"condition_name":"x","confidence_score":50,"severity":"Critical"}`))
	assert.Error(t, err)
}

func TestParseSpecialists_KeepsOrder(t *testing.T) {
	data := []byte(`[
		{"name":"Dr. Rao","clinic_name":"SkinCare Clinic","address":"1 Main St","phone":"555-0100","rating":"4.8","distance":"1.2 km"},
		{"name":"Dr. Mehta","clinic_name":"DermaPlus","address":"2 Side St","phone":"555-0101","rating":"4.5","distance":"3.4 km"}
	]`)

	specialists, err := parseSpecialists(data)
	require.NoError(t, err)
	require.Len(t, specialists, 2)
	assert.Equal(t, "Dr. Rao", specialists[0].Name)
	assert.Equal(t, "DermaPlus", specialists[1].ClinicName)
}

func TestAnalysisSchema_CoversAllResultFields(t *testing.T) {
	schema := analysisSchema()

	assert.ElementsMatch(t, []string{
		"condition_name", "confidence_score", "severity", "description",
		"symptoms_observed", "recommendations", "treatment_options",
	}, schema.Required)

	for _, field := range schema.Required {
		assert.Contains(t, schema.Properties, field)
	}

	assert.ElementsMatch(t, []string{"Mild", "Moderate", "Severe"}, schema.Properties["severity"].Enum)
}
