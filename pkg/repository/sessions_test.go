package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twacha/skincare-assistant/pkg/domain"
	"github.com/twacha/skincare-assistant/pkg/storage"
)

func newTestRepo(t *testing.T) (*sessionRepository, *storage.MemoryBlobStore) {
	t.Helper()

	store := storage.NewMemoryBlobStore()
	repo, err := NewSessionRepository(context.Background(), store)
	require.NoError(t, err)
	return repo, store
}

func TestNewSessionRepository_EmptyStoreStartsWithOneSession(t *testing.T) {
	repo, store := newTestRepo(t)

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, domain.DefaultSessionTitle, list[0].Title)
	assert.Equal(t, list[0].ID, repo.CurrentID())

	// The synthesized session is persisted immediately.
	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestNewSessionRepository_MalformedBlobStartsFresh(t *testing.T) {
	store := storage.NewMemoryBlobStore()
	require.NoError(t, store.Save(context.Background(), []byte("{not json")))

	repo, err := NewSessionRepository(context.Background(), store)
	require.NoError(t, err)

	assert.Len(t, repo.List(), 1)
	assert.NotEmpty(t, repo.CurrentID())
}

func TestNewSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo(t)

	// A non-ASCII first message; its derived title must survive the reload
	// byte for byte.
	const firstMessage = "त्वचा पर लाल खुजली वाले चकत्ते हैं"

	first := repo.List()[0]
	require.NoError(t, repo.ReplaceMessages(ctx, first.ID, []domain.Message{
		{ID: "m1", Role: domain.MessageRoleUser, Content: firstMessage, Timestamp: 1},
		{ID: "m2", Role: domain.MessageRoleAssistant, Content: "hi", Timestamp: 2},
	}, domain.DeriveSessionTitle(firstMessage)))
	_, err := repo.Create(ctx)
	require.NoError(t, err)

	reloaded, err := NewSessionRepository(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, repo.List(), reloaded.List())
	// The first (most recent) session becomes current after a reload.
	assert.Equal(t, repo.List()[0].ID, reloaded.CurrentID())
}

func TestCreate_InsertsAtFrontAndBecomesCurrent(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.Create(context.Background())
	require.NoError(t, err)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, created.ID, repo.CurrentID())
}

func TestSelect_UnknownIDIsAnError(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Select("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, repo.List()[0].ID, repo.CurrentID())
}

func TestDelete_NeverLeavesCollectionEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	only := repo.List()[0]
	require.NoError(t, repo.Delete(ctx, only.ID))

	list := repo.List()
	require.Len(t, list, 1)
	assert.NotEqual(t, only.ID, list[0].ID)
	assert.Equal(t, list[0].ID, repo.CurrentID())
}

func TestDelete_CurrentPromotesFrontOfRemaining(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	older := repo.List()[0]
	newer, err := repo.Create(ctx)
	require.NoError(t, err)
	require.Equal(t, newer.ID, repo.CurrentID())

	require.NoError(t, repo.Delete(ctx, newer.ID))

	require.Len(t, repo.List(), 1)
	assert.Equal(t, older.ID, repo.CurrentID())
}

func TestDelete_NonCurrentKeepsSelection(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	older := repo.List()[0]
	newer, err := repo.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, older.ID))

	assert.Equal(t, newer.ID, repo.CurrentID())
}

func TestDelete_UnknownIDIsAnError(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), domain.ErrSessionNotFound)
	assert.Len(t, repo.List(), 1)
}

func TestReplaceMessages_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	id := repo.List()[0].ID

	first := []domain.Message{{ID: "m1", Role: domain.MessageRoleUser, Content: "hi", Timestamp: 1}}
	require.NoError(t, repo.ReplaceMessages(ctx, id, first, "hi"))

	// Shrinking the history is rejected.
	assert.Error(t, repo.ReplaceMessages(ctx, id, nil, ""))

	// Reordering is rejected.
	reordered := []domain.Message{
		{ID: "m2", Role: domain.MessageRoleAssistant, Content: "hello", Timestamp: 2},
		first[0],
	}
	assert.Error(t, repo.ReplaceMessages(ctx, id, reordered, ""))

	grown := append(first, domain.Message{ID: "m2", Role: domain.MessageRoleAssistant, Content: "hello", Timestamp: 2})
	require.NoError(t, repo.ReplaceMessages(ctx, id, grown, ""))

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 2)
}

func TestReplaceMessages_TitleRules(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	id := repo.List()[0].ID

	msgs := []domain.Message{{ID: "m1", Role: domain.MessageRoleUser, Content: "itchy red patch", Timestamp: 1}}
	require.NoError(t, repo.ReplaceMessages(ctx, id, msgs, "itchy red patch"))

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "itchy red patch", got.Title)

	// An empty override retains the existing title.
	msgs = append(msgs, domain.Message{ID: "m2", Role: domain.MessageRoleAssistant, Content: "ok", Timestamp: 2})
	require.NoError(t, repo.ReplaceMessages(ctx, id, msgs, ""))

	got, err = repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "itchy red patch", got.Title)
	assert.GreaterOrEqual(t, got.LastUpdated, int64(0))
}

func TestReplaceMessages_UnknownSession(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.ReplaceMessages(context.Background(), "nope", nil, "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
