// Package cache provides TTL-bounded memoization stores shared by the
// discovery and extraction stages. The in-memory store is the default;
// a Redis-backed store is available for deployments that share a cache
// across processes.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key is absent or its entry has expired.
var ErrNotFound = errors.New("key not found in cache")

// Store is the contract both cache backends satisfy.
// A miss occurs when no entry exists or the entry's age exceeds the TTL.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Put(ctx context.Context, key string, value V) error
	Clear(ctx context.Context) error
	Size(ctx context.Context) (int, error)
}

// entry pairs a cached value with its creation time.
type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Memory is a mutex-guarded in-memory store with lazy TTL eviction:
// expired entries are deleted on read, not proactively swept.
type Memory[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

// NewMemory creates an in-memory store whose entries expire after ttl.
func NewMemory[V any](ttl time.Duration) *Memory[V] {
	return &Memory[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or ErrNotFound on a miss.
// An expired entry is removed and reported as a miss.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if m.now().Sub(e.createdAt) > m.ttl {
		delete(m.entries, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Put stores value under key, resetting its age.
func (m *Memory[V]) Put(_ context.Context, key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[V]{value: value, createdAt: m.now()}
	return nil
}

// Clear removes all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]entry[V])
	return nil
}

// Size returns the number of stored entries, including any that have
// expired but not yet been evicted.
func (m *Memory[V]) Size(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries), nil
}
