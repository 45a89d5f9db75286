// internal/store/memory.go
//
// Store interface and its in-memory implementation.
//
// A Store holds opaque records (JSON documents) keyed by a short
// filesystem-safe key. The profile and leaderboard packages serialize their
// own types on top of it. Implementations:
//   - memory (this file): map + RWMutex, used by tests.
//   - file (file.go): one <key>.json per record, atomic replace on write.
//   - sqlite (sqlite.go): rows in a blobs table, one bucket per Store.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for keyed records.
type Store interface {
	// Get returns the record for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or fully replaces the record for key.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the record and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Keys lists every stored key, sorted.
	Keys(ctx context.Context) ([]string, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex      // guards data
	data map[string][]byte // keyed by record key
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{data: make(map[string][]byte)}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.data[key]; ok {
		return append([]byte(nil), b...), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok, nil
}

func (m *memory) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
