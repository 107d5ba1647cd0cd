package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/twacha/skincare-assistant/pkg/domain"
	"github.com/twacha/skincare-assistant/pkg/logger"
)

// AnalysisCaption is the fixed assistant text accompanying a structured
// diagnostic result.
const AnalysisCaption = "I've analyzed the image. Here are the detailed findings based on the Finetuned Qwen 2 VL model."

type SessionRepository interface {
	Get(id string) (domain.ChatSession, error)
	ReplaceMessages(ctx context.Context, id string, messages []domain.Message, titleOverride string) error
}

type AIGateway interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*domain.SkinAnalysisResult, error)
	ContinueChat(ctx context.Context, history []domain.Message, prompt string) (string, error)
	FindSpecialists(ctx context.Context, latitude, longitude float64) ([]domain.Dermatologist, error)
}

// consultationService runs one conversation turn: the user message is
// appended before the model call and survives any failure; the assistant
// message is appended only on success. At most one turn per session is in
// flight at a time.
type consultationService struct {
	sessionRepo SessionRepository
	gateway     AIGateway

	mu    sync.Mutex
	turns map[string]domain.TurnState
}

func NewConsultationService(sessionRepo SessionRepository, gateway AIGateway) *consultationService {
	return &consultationService{
		sessionRepo: sessionRepo,
		gateway:     gateway,
		turns:       make(map[string]domain.TurnState),
	}
}

// TurnState reports the session's in-flight turn and the last turn error.
func (c *consultationService) TurnState(sessionID string) domain.TurnState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.turns[sessionID]
	if !ok {
		return domain.TurnState{Phase: domain.TurnPhaseIdle}
	}
	return state
}

// SubmitTurn appends the user message, dispatches it to the gateway and
// appends the assistant reply. A turn with neither text nor image is
// rejected. On gateway failure the user message stays in history unanswered
// and the failure text is kept in the turn state; retry is manual.
func (c *consultationService) SubmitTurn(ctx context.Context, sessionID, text string, image []byte, imageMIME string) (domain.Message, error) {
	if strings.TrimSpace(text) == "" && len(image) == 0 {
		return domain.Message{}, domain.ErrEmptyTurn
	}

	session, err := c.sessionRepo.Get(sessionID)
	if err != nil {
		return domain.Message{}, err
	}

	if err := c.beginTurn(sessionID); err != nil {
		return domain.Message{}, err
	}

	userMessage := domain.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      domain.MessageRoleUser,
		Content:   text,
		Timestamp: time.Now().UnixMilli(),
	}
	if len(image) > 0 {
		userMessage.Image = base64.StdEncoding.EncodeToString(image)
	}

	// Optimistic append: a failed model call never loses the user's input.
	prior := session.Messages
	var titleOverride string
	if len(prior) == 0 {
		titleOverride = domain.DeriveSessionTitle(strings.TrimSpace(text))
	}
	if err := c.sessionRepo.ReplaceMessages(ctx, sessionID, append(copyMessages(prior), userMessage), titleOverride); err != nil {
		c.failTurn(sessionID, err)
		return domain.Message{}, fmt.Errorf("appending user message: %w", err)
	}

	assistantMessage, err := c.completeTurn(ctx, sessionID, prior, userMessage, image, imageMIME)
	if err != nil {
		c.failTurn(sessionID, err)
		return domain.Message{}, err
	}

	c.endTurn(sessionID, "")
	return assistantMessage, nil
}

// completeTurn is the fallible half of a turn: one gateway call plus the
// assistant append. The session is re-read before appending so a reply
// arriving after a delete is discarded instead of being applied elsewhere.
func (c *consultationService) completeTurn(ctx context.Context, sessionID string, prior []domain.Message, userMessage domain.Message, image []byte, imageMIME string) (domain.Message, error) {
	assistantMessage := domain.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      domain.MessageRoleAssistant,
		Timestamp: time.Now().UnixMilli(),
	}

	if len(image) > 0 {
		slog.InfoContext(ctx, "analyzing image", "session_id", sessionID, "image_bytes", len(image))

		result, err := c.gateway.AnalyzeImage(ctx, image, imageMIME)
		if err != nil {
			return domain.Message{}, err
		}
		assistantMessage.Content = AnalysisCaption
		assistantMessage.Analysis = result
	} else {
		slog.InfoContext(ctx, "continuing chat", "session_id", sessionID, "history_len", len(prior))

		// History excludes the just-appended user message; it travels as the
		// new prompt.
		reply, err := c.gateway.ContinueChat(ctx, prior, userMessage.Content)
		if err != nil {
			return domain.Message{}, err
		}
		assistantMessage.Content = reply
	}

	fresh, err := c.sessionRepo.Get(sessionID)
	if err != nil {
		slog.WarnContext(ctx, "discarding reply for deleted session", "session_id", sessionID, logger.Err(err))
		return domain.Message{}, err
	}

	if err := c.sessionRepo.ReplaceMessages(ctx, sessionID, append(copyMessages(fresh.Messages), assistantMessage), ""); err != nil {
		return domain.Message{}, fmt.Errorf("appending assistant message: %w", err)
	}

	return assistantMessage, nil
}

// LocateSpecialists passes device coordinates through to the gateway lookup.
func (c *consultationService) LocateSpecialists(ctx context.Context, latitude, longitude float64) ([]domain.Dermatologist, error) {
	slog.InfoContext(ctx, "locating specialists", "latitude", latitude, "longitude", longitude)

	return c.gateway.FindSpecialists(ctx, latitude, longitude)
}

func (c *consultationService) beginTurn(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.turns[sessionID].Phase == domain.TurnPhaseSending {
		return domain.ErrTurnInFlight
	}
	c.turns[sessionID] = domain.TurnState{Phase: domain.TurnPhaseSending}
	return nil
}

func (c *consultationService) endTurn(sessionID, errText string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.turns[sessionID] = domain.TurnState{Phase: domain.TurnPhaseIdle, Err: errText}
}

// failTurn records the failure for the UI to show. A turn of a session that
// disappeared mid-flight has no UI left to report to; its state is dropped
// entirely so the map holds no entries for deleted sessions.
func (c *consultationService) failTurn(sessionID string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.turns, sessionID)
		return
	}
	c.endTurn(sessionID, domain.UserMessage(err))
}

func copyMessages(messages []domain.Message) []domain.Message {
	out := make([]domain.Message, len(messages), len(messages)+1)
	copy(out, messages)
	return out
}
