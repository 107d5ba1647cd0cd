package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HistoryKey is the single slot the whole session collection is stored under.
const HistoryKey = "twacha_sessions"

type sqliteBlobStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteBlobStore persists one opaque blob per key in the history_blobs
// table. The session repository uses it with [HistoryKey].
func NewSQLiteBlobStore(db *sql.DB, key string) *sqliteBlobStore {
	return &sqliteBlobStore{db: db, key: key}
}

func (s *sqliteBlobStore) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT data FROM history_blobs WHERE name = $1`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching blob %q: %w", s.key, err)
	}

	return data, nil
}

func (s *sqliteBlobStore) Save(ctx context.Context, data []byte) error {
	const query = `
		INSERT INTO history_blobs (name, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving blob %q: %w", s.key, err)
	}

	return nil
}
