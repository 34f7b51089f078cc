package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer; the Redis implementation lives in
// internal/infrastructure/cache.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a miss, dest is then left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error
}
