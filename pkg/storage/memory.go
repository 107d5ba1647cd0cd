package storage

import (
	"context"
	"sync"
)

// MemoryBlobStore is an in-memory stand-in for the durable store, used in
// tests and when no database path is configured.
type MemoryBlobStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

func (m *MemoryBlobStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryBlobStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}
