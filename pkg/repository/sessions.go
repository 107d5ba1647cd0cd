package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/twacha/skincare-assistant/pkg/domain"
	"github.com/twacha/skincare-assistant/pkg/logger"
)

type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// sessionRepository holds the ordered session collection in memory,
// most-recently-created first, and writes the whole collection through the
// blob store after every mutation. Exactly one session is current whenever
// the collection is non-empty, and the collection is never left empty by a
// delete.
type sessionRepository struct {
	mu        sync.Mutex
	store     BlobStore
	sessions  []domain.ChatSession
	currentID string
}

// NewSessionRepository reads the persisted history once. An absent or empty
// history starts with a single fresh session; a malformed blob is discarded
// and logged rather than propagated, so a corrupt store never blocks startup.
func NewSessionRepository(ctx context.Context, store BlobStore) (*sessionRepository, error) {
	r := &sessionRepository{store: store}

	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading session history: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.sessions); err != nil {
			slog.WarnContext(ctx, "discarding malformed session history", logger.Err(err))
			r.sessions = nil
		}
	}

	if len(r.sessions) == 0 {
		r.sessions = []domain.ChatSession{newSession()}
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
	}
	r.currentID = r.sessions[0].ID

	return r, nil
}

// List returns the session collection, most-recently-created first.
func (r *sessionRepository) List() []domain.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.ChatSession, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// CurrentID returns the id of the current session.
func (r *sessionRepository) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currentID
}

func (r *sessionRepository) Get(id string) (domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.find(id)
	if !ok {
		return domain.ChatSession{}, domain.ErrSessionNotFound
	}
	return s, nil
}

// Create inserts a fresh session at the front of the collection and makes it
// current.
func (r *sessionRepository) Create(ctx context.Context) (domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSession()
	r.sessions = append([]domain.ChatSession{s}, r.sessions...)
	r.currentID = s.ID

	if err := r.persist(ctx); err != nil {
		return domain.ChatSession{}, err
	}
	return s, nil
}

// Select makes the session with the given id current. Unknown ids are
// surfaced as [domain.ErrSessionNotFound] instead of being silently ignored.
func (r *sessionRepository) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.find(id); !ok {
		return domain.ErrSessionNotFound
	}
	r.currentID = id
	return nil
}

// Delete removes the session. Deleting the current session promotes the new
// front of the list; deleting the last session synthesizes a fresh one, so
// the collection is never empty afterwards.
func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.find(id); !ok {
		return domain.ErrSessionNotFound
	}

	r.sessions = lo.Filter(r.sessions, func(s domain.ChatSession, _ int) bool {
		return s.ID != id
	})

	if r.currentID == id {
		if len(r.sessions) == 0 {
			r.sessions = []domain.ChatSession{newSession()}
		}
		r.currentID = r.sessions[0].ID
	}

	return r.persist(ctx)
}

// ReplaceMessages swaps in the session's full message list. The new list must
// extend the stored one in place; messages are immutable once appended. The
// title is overridden only when titleOverride is non-empty.
func (r *sessionRepository) ReplaceMessages(ctx context.Context, id string, messages []domain.Message, titleOverride string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.sessions {
		if r.sessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrSessionNotFound
	}

	prev := r.sessions[idx].Messages
	if len(messages) < len(prev) {
		return fmt.Errorf("message history may only grow: %d -> %d", len(prev), len(messages))
	}
	for i := range prev {
		if messages[i].ID != prev[i].ID {
			return fmt.Errorf("message history reordered at index %d", i)
		}
	}

	r.sessions[idx].Messages = messages
	r.sessions[idx].LastUpdated = time.Now().UnixMilli()
	if titleOverride != "" {
		r.sessions[idx].Title = titleOverride
	}

	return r.persist(ctx)
}

func (r *sessionRepository) find(id string) (domain.ChatSession, bool) {
	return lo.Find(r.sessions, func(s domain.ChatSession) bool {
		return s.ID == id
	})
}

// persist serializes the whole collection under the single history key.
// Callers must hold the mutex.
func (r *sessionRepository) persist(ctx context.Context) error {
	data, err := json.Marshal(r.sessions)
	if err != nil {
		return fmt.Errorf("marshaling session history: %w", err)
	}
	if err := r.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving session history: %w", err)
	}
	return nil
}

func newSession() domain.ChatSession {
	return domain.ChatSession{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Title:       domain.DefaultSessionTitle,
		Messages:    []domain.Message{},
		LastUpdated: time.Now().UnixMilli(),
	}
}
