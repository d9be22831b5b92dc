package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis instance. Values are JSON-encoded.
// TTL enforcement is delegated to Redis key expiry, so reads never observe
// stale entries.
type Redis[V any] struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis creates a Redis-backed store. The prefix namespaces keys so
// multiple caches with different TTLs can share one database.
func NewRedis[V any](client *redis.Client, prefix string, ttl time.Duration) *Redis[V] {
	return &Redis[V]{client: client, ttl: ttl, prefix: prefix}
}

func (r *Redis[V]) key(key string) string {
	return r.prefix + ":" + key
}

// Get returns the cached value for key, or ErrNotFound on a miss.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("redis get failed: %w", err)
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return value, nil
}

// Put stores value under key with the store's TTL.
func (r *Redis[V]) Put(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Clear removes all entries under this store's prefix.
func (r *Redis[V]) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}

// Size returns the number of entries under this store's prefix.
func (r *Redis[V]) Size(ctx context.Context) (int, error) {
	count := 0
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan failed: %w", err)
	}
	return count, nil
}
