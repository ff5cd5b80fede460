package cache

import (
	"sync"
	"time"
)

// entry holds a cached value with its insertion time.
type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Memory is a thread-safe in-memory store with TTL support. Eviction is
// lazy: an expired entry is removed when a read observes it, never by a
// background sweeper, so idle entries cost memory only until the next
// lookup.
type Memory[V any] struct {
	entries map[string]entry[V]
	mu      sync.RWMutex
	ttl     time.Duration
}

// NewMemory creates a new in-memory store with the specified TTL.
// A zero or negative ttl means entries never expire.
func NewMemory[V any](ttl time.Duration) *Memory[V] {
	if ttl < 0 {
		ttl = 0
	}
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
	}
}

// Get retrieves a value from the store.
// Returns the value and true if found and not expired, the zero value and
// false otherwise.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if c.ttl > 0 && time.Since(e.insertedAt) > c.ttl {
		// Entry expired - clean it up. Re-check under the write lock in
		// case a concurrent Set refreshed it in the meantime.
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && time.Since(cur.insertedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set stores a value in the store.
func (c *Memory[V]) Set(key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:      value,
		insertedAt: time.Now(),
	}
	return nil
}

// Len returns the number of entries (including expired ones not yet read).
func (c *Memory[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Memory[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Verify Memory implements Store
var _ Store[string] = (*Memory[string])(nil)
