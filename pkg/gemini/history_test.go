package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/twacha/skincare-assistant/pkg/domain"
)

func TestHistoryContents(t *testing.T) {
	history := []domain.Message{
		{Role: domain.MessageRoleUser, Content: "what is this?"},
		{
			Role:    domain.MessageRoleAssistant,
			Content: "Here are the findings.",
			Analysis: &domain.SkinAnalysisResult{
				ConditionName: "Eczema",
				Severity:      domain.SeverityMild,
			},
		},
		{Role: domain.MessageRoleUser, Content: "thanks"},
	}

	contents := historyContents(history)
	require.Len(t, contents, 3)

	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, string(genai.RoleUser), contents[2].Role)

	// The attached analysis is flattened into the assistant turn's text.
	annotated := contents[1].Parts[0].Text
	assert.Contains(t, annotated, "Here are the findings.")
	assert.Contains(t, annotated, "[System Context - Previous Analysis Result]:")
	assert.Contains(t, annotated, `"condition_name":"Eczema"`)

	// User turns never get the annotation, even if something attached one.
	assert.Equal(t, "what is this?", contents[0].Parts[0].Text)
}

func TestHistoryContents_Empty(t *testing.T) {
	assert.Empty(t, historyContents(nil))
}
