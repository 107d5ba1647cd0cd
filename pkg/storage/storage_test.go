package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twacha/skincare-assistant/pkg/database"
	"github.com/twacha/skincare-assistant/pkg/storage"
)

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryBlobStore()

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(ctx, []byte(`[{"id":"1"}]`)))

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), data)
}

func TestSQLiteBlobStore(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "twacha.db"))
	require.NoError(t, err)
	defer db.Close()

	store := storage.NewSQLiteBlobStore(db, storage.HistoryKey)

	// Absent slot reads as nil without an error.
	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(ctx, []byte(`first`)))
	require.NoError(t, store.Save(ctx, []byte(`second`)))

	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`second`), data)

	// Keys are independent slots.
	other := storage.NewSQLiteBlobStore(db, "other_key")
	data, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
}
