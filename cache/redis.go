package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed store shared across processes. Values are
// JSON-encoded and expiry is delegated to the server, so reads never observe
// entries older than the TTL and lazy cleanup is unnecessary.
type Redis[V any] struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration // Entry lifetime (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "domloc:")
}

// NewRedis creates a new Redis store with the given configuration.
func NewRedis[V any](cfg RedisConfig) (*Redis[V], error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisFromClient[V](client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisFromClient creates a Redis store from an existing client.
func NewRedisFromClient[V any](client *redis.Client, ttl time.Duration, keyPrefix string) *Redis[V] {
	if keyPrefix == "" {
		keyPrefix = "domloc:"
	}
	if ttl < 0 {
		ttl = 0
	}

	return &Redis[V]{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis. Transport failures read as misses so a
// flaky Redis degrades to uncached lookups instead of failing them.
func (c *Redis[V]) Get(key string) (V, bool) {
	var zero V

	ctx := context.Background()
	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		return zero, false
	}

	var v V
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return zero, false
	}
	return v, true
}

// Set stores a value in Redis.
func (c *Redis[V]) Set(key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return c.client.Set(ctx, c.keyPrefix+key, string(data), c.ttl).Err()
}

// Close closes the Redis connection.
func (c *Redis[V]) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *Redis[V]) Ping() error {
	ctx := context.Background()
	return c.client.Ping(ctx).Err()
}

// Verify Redis implements Store
var _ Store[string] = (*Redis[string])(nil)
