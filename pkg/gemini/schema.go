package gemini

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/twacha/skincare-assistant/pkg/domain"
)

func analysisSchema() *genai.Schema {
	stringList := func() *genai.Schema {
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"condition_name": {Type: genai.TypeString},
			"confidence_score": {
				Type:        genai.TypeNumber,
				Description: "Confidence score between 0 and 100",
			},
			"severity": {
				Type: genai.TypeString,
				Enum: []string{
					string(domain.SeverityMild),
					string(domain.SeverityModerate),
					string(domain.SeveritySevere),
				},
			},
			"description":       {Type: genai.TypeString},
			"symptoms_observed": stringList(),
			"recommendations":   stringList(),
			"treatment_options": stringList(),
		},
		Required: []string{
			"condition_name",
			"confidence_score",
			"severity",
			"description",
			"symptoms_observed",
			"recommendations",
			"treatment_options",
		},
	}
}

func specialistsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString},
				"clinic_name": {Type: genai.TypeString},
				"address":     {Type: genai.TypeString},
				"phone":       {Type: genai.TypeString},
				"rating":      {Type: genai.TypeString},
				"distance":    {Type: genai.TypeString},
			},
			Required: []string{"name", "clinic_name", "address", "phone", "rating", "distance"},
		},
	}
}

// parseAnalysis decodes the constrained JSON reply. The confidence score is
// clamped to [0,100]; an unknown severity rejects the whole reply.
func parseAnalysis(data []byte) (*domain.SkinAnalysisResult, error) {
	var result domain.SkinAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding analysis result: %w", err)
	}

	if !result.Severity.Valid() {
		return nil, fmt.Errorf("unknown severity %q", result.Severity)
	}

	if result.ConfidenceScore < 0 {
		result.ConfidenceScore = 0
	} else if result.ConfidenceScore > 100 {
		result.ConfidenceScore = 100
	}

	return &result, nil
}

func parseSpecialists(data []byte) ([]domain.Dermatologist, error) {
	var specialists []domain.Dermatologist
	if err := json.Unmarshal(data, &specialists); err != nil {
		return nil, fmt.Errorf("decoding specialist list: %w", err)
	}
	return specialists, nil
}
