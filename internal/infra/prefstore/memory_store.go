package prefstore

import (
	"context"
	"sync"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// MemoryStore keeps preferences in process memory for tests/dev.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements dashboard.PreferenceStore.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set overwrites any previous value.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

var _ dashboard.PreferenceStore = (*MemoryStore)(nil)
