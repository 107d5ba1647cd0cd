package gemini

import (
	"encoding/json"

	"google.golang.org/genai"

	"github.com/twacha/skincare-assistant/pkg/domain"
)

// historyContents maps stored conversation turns to model contents. An
// assistant message with an attached diagnostic result gets it flattened into
// the text, so the model keeps the context of what was diagnosed.
func historyContents(history []domain.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == domain.MessageRoleAssistant {
			role = genai.RoleModel
		}

		text := msg.Content
		if msg.Role == domain.MessageRoleAssistant && msg.Analysis != nil {
			if encoded, err := json.Marshal(msg.Analysis); err == nil {
				text += "\n\n[System Context - Previous Analysis Result]: " + string(encoded)
			}
		}

		contents = append(contents, genai.NewContentFromText(text, role))
	}
	return contents
}
