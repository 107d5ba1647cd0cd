package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/twacha/skincare-assistant/pkg/api/response"
	"github.com/twacha/skincare-assistant/pkg/domain"
	"github.com/twacha/skincare-assistant/pkg/markdown"
)

type SessionRepository interface {
	List() []domain.ChatSession
	CurrentID() string
	Get(id string) (domain.ChatSession, error)
	Create(ctx context.Context) (domain.ChatSession, error)
	Select(id string) error
	Delete(ctx context.Context, id string) error
}

type sessions struct {
	repo   SessionRepository
	writer response.JSONResponseWriter
}

func NewSessions(repo SessionRepository) *sessions {
	return &sessions{repo: repo}
}

type sessionSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	LastUpdated  int64  `json:"lastUpdated"`
	MessageCount int    `json:"message_count"`
}

type messageView struct {
	domain.Message
	ContentHTML string `json:"content_html,omitempty"`
}

type sessionView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	LastUpdated int64         `json:"lastUpdated"`
	Messages    []messageView `json:"messages"`
}

func (s *sessions) ListSessions(w http.ResponseWriter, r *http.Request) {
	list := s.repo.List()

	summaries := make([]sessionSummary, 0, len(list))
	for _, session := range list {
		summaries = append(summaries, sessionSummary{
			ID:           session.ID,
			Title:        session.Title,
			LastUpdated:  session.LastUpdated,
			MessageCount: len(session.Messages),
		})
	}

	s.writer.WriteSuccessResponse(w, map[string]any{
		"sessions":   summaries,
		"current_id": s.repo.CurrentID(),
	})
}

func (s *sessions) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.repo.Create(r.Context())
	if err != nil {
		s.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writer.WriteResponse(w, http.StatusCreated, viewOf(session))
}

func (s *sessions) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.repo.Get(mux.Vars(r)["id"])
	if err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.writer.WriteSuccessResponse(w, viewOf(session))
}

func (s *sessions) SelectSession(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Select(mux.Vars(r)["id"]); err != nil {
		s.writeRepoError(w, err)
		return
	}

	s.writer.WriteSuccessResponse(w, map[string]string{"current_id": s.repo.CurrentID()})
}

func (s *sessions) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeRepoError(w, err)
		return
	}

	// A delete never leaves the collection empty; tell the UI what to show.
	s.writer.WriteSuccessResponse(w, map[string]string{"current_id": s.repo.CurrentID()})
}

func (s *sessions) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.writer.WriteErrorResponse(w, http.StatusNotFound, "Session not found.")
		return
	}
	s.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}

func viewOf(session domain.ChatSession) sessionView {
	messages := make([]messageView, 0, len(session.Messages))
	for _, msg := range session.Messages {
		view := messageView{Message: msg}
		if msg.Role == domain.MessageRoleAssistant {
			view.ContentHTML = markdown.ToHTML(msg.Content)
		}
		messages = append(messages, view)
	}

	return sessionView{
		ID:          session.ID,
		Title:       session.Title,
		LastUpdated: session.LastUpdated,
		Messages:    messages,
	}
}
