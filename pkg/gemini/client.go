package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/twacha/skincare-assistant/pkg/domain"
)

const DefaultModel = "gemini-2.5-flash"

const analysisInstruction = `Analyze this skin condition image. You are an expert dermatologist system using Finetuned Qwen 2 VL architecture.
Identify the condition, estimate confidence (0-100), assess severity, list observed symptoms, provide recommendations, and potential treatments.

Return ONLY raw JSON. Do not use Markdown code blocks.`

const chatPersona = "You are Twacha AI, a friendly and professional medical assistant powered by Finetuned Qwen 2 VL. " +
	"You help users understand their skin conditions based on previous analysis. " +
	"Be concise, empathetic, and always remind users to consult a doctor for definitive diagnosis."

const chatFallbackReply = "I apologize, I couldn't process that request."

type client struct {
	api   *genai.Client
	model string
}

// NewClient creates a gateway to the Gemini inference service. Calls are
// pass-through: no retry, no backoff, no caching.
func NewClient(ctx context.Context, apiKey, model string) (*client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &client{api: api, model: model}, nil
}

// AnalyzeImage classifies a skin-condition image into a structured result.
// The response is constrained to the exact result schema; anything else is an
// [domain.AnalysisError].
func (c *client) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*domain.SkinAnalysisResult, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(analysisInstruction),
		}, genai.RoleUser),
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	})
	if err != nil {
		return nil, &domain.AnalysisError{Cause: fmt.Errorf("generating content: %w", err)}
	}

	text := resp.Text()
	if text == "" {
		return nil, &domain.AnalysisError{Cause: fmt.Errorf("no response generated from model")}
	}

	result, err := parseAnalysis([]byte(text))
	if err != nil {
		return nil, &domain.AnalysisError{Cause: err}
	}
	return result, nil
}

// ContinueChat sends the prior conversation plus the new prompt as a
// multi-turn completion and returns the reply text.
func (c *client) ContinueChat(ctx context.Context, history []domain.Message, prompt string) (string, error) {
	contents := historyContents(history)
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatPersona, genai.RoleUser),
	})
	if err != nil {
		return "", &domain.ChatError{Cause: fmt.Errorf("generating content: %w", err)}
	}

	if text := resp.Text(); text != "" {
		return text, nil
	}
	return chatFallbackReply, nil
}

// FindSpecialists asks the model for dermatologists near the given
// coordinates. The returned order is kept as received.
func (c *client) FindSpecialists(ctx context.Context, latitude, longitude float64) ([]domain.Dermatologist, error) {
	prompt := fmt.Sprintf(
		"List dermatologists and skin clinics near latitude %f, longitude %f. "+
			"For each, give the doctor's name, clinic name, address, phone number, rating and approximate distance. "+
			"Return ONLY raw JSON.", latitude, longitude)

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   specialistsSchema(),
	})
	if err != nil {
		return nil, &domain.LocationError{Cause: fmt.Errorf("generating content: %w", err)}
	}

	text := resp.Text()
	if text == "" {
		return nil, &domain.LocationError{Cause: fmt.Errorf("no response generated from model")}
	}

	specialists, err := parseSpecialists([]byte(text))
	if err != nil {
		return nil, &domain.LocationError{Cause: err}
	}
	return specialists, nil
}
