// Package snapshot keeps the latest rendered map frame and archives it.
package snapshot

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("snapshot not found")

// Archive stores encoded frames by key. Put overwrites.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// MemoryArchive keeps objects in process memory.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArchive builds an empty archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string][]byte)}
}

func (a *MemoryArchive) Put(_ context.Context, key string, data []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[key] = append([]byte(nil), data...)
	return nil
}

func (a *MemoryArchive) Get(_ context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}
