// Package storage provides the two persistence backends of the app: an
// S3/MinIO object store for the static trip data and a small key-value
// store used by the geocode cache and the visited set.
package storage

import (
	"context"
	"sync"
)

// KV is a minimal persistent key-value contract. Values are opaque
// bytes; callers handle their own encoding.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores the value, overwriting any prior entry.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the entry; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryKV is a process-local KV used when no database is configured.
// Nothing survives a restart, which mirrors running with persistence
// disabled.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[key] = stored
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
