package store

import (
	"context"
	"sync"
)

// Memory is an in-memory KV implementation for tests and local runs
// without a database.
type Memory struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers []func(key string)
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored state.
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements KV.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	watchers := make([]func(string), len(m.watchers))
	copy(watchers, m.watchers)
	m.mu.Unlock()

	for _, fn := range watchers {
		fn(key)
	}
	return nil
}

// Watch implements KV.
func (m *Memory) Watch(fn func(key string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// Ensure Memory implements KV at compile time.
var _ KV = (*Memory)(nil)
