// Package cache provides expiring key-value stores for resolution caching.
package cache

import "time"

// DefaultTTL is the entry lifetime used when hosts have no better number.
// Sixty seconds keeps repeated lookups cheap while letting dictionary swaps
// show up within a minute.
const DefaultTTL = 60 * time.Second

// Store is the interface for expiring caches. Both implementations treat an
// expired entry as absent.
type Store[V any] interface {
	// Get retrieves a cached value. Returns the zero value and false if the
	// key is missing or its entry has outlived the TTL.
	Get(key string) (V, bool)

	// Set stores a value under key with the current time.
	Set(key string, value V) error
}
