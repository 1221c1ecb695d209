package cart

import (
	"context"
	"sync"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/service"
)

// MemoryStore is a process-local service.KeyValueStore.
type MemoryStore struct {
	data map[string][]byte
	mu   sync.RWMutex
}

var _ service.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Read implements service.KeyValueStore.
func (m *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write implements service.KeyValueStore.
func (m *MemoryStore) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
