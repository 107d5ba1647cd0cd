package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/twacha/skincare-assistant/pkg/api/response"
	"github.com/twacha/skincare-assistant/pkg/domain"
	"github.com/twacha/skincare-assistant/pkg/markdown"
)

type ConsultationService interface {
	SubmitTurn(ctx context.Context, sessionID, text string, image []byte, imageMIME string) (domain.Message, error)
	TurnState(sessionID string) domain.TurnState
}

type messages struct {
	consultations ConsultationService
	writer        response.JSONResponseWriter
}

func NewMessages(consultations ConsultationService) *messages {
	return &messages{consultations: consultations}
}

type submitTurnRequest struct {
	Content       string `json:"content"`
	Image         string `json:"image,omitempty"`
	ImageMIMEType string `json:"image_mime_type,omitempty"`
}

// SubmitTurn runs one full conversation turn and replies with the assistant
// message. The user message is already committed by the time any error below
// is written, so the client re-fetches the session either way.
func (m *messages) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req submitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	var image []byte
	if req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			m.writer.WriteErrorResponse(w, http.StatusBadRequest, "Image is not valid base64.")
			return
		}
		image = decoded
	}

	assistant, err := m.consultations.SubmitTurn(r.Context(), sessionID, req.Content, image, req.ImageMIMEType)
	if err != nil {
		m.writeTurnError(w, sessionID, err)
		return
	}

	view := messageView{Message: assistant, ContentHTML: markdown.ToHTML(assistant.Content)}
	m.writer.WriteResponse(w, http.StatusCreated, map[string]any{
		"message": view,
		"turn":    m.consultations.TurnState(sessionID),
	})
}

// TurnState lets the UI poll the sending flag and the last turn error.
func (m *messages) TurnState(w http.ResponseWriter, r *http.Request) {
	m.writer.WriteSuccessResponse(w, m.consultations.TurnState(mux.Vars(r)["id"]))
}

func (m *messages) writeTurnError(w http.ResponseWriter, sessionID string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyTurn):
		m.writer.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Message needs text or an image.")
	case errors.Is(err, domain.ErrTurnInFlight):
		m.writer.WriteErrorResponse(w, http.StatusConflict, "A message is already being processed for this consultation.")
	case errors.Is(err, domain.ErrSessionNotFound):
		m.writer.WriteErrorResponse(w, http.StatusNotFound, "Session not found.")
	default:
		m.writer.WriteErrorResponse(w, http.StatusBadGateway, domain.UserMessage(err))
	}
}
