// Package cache stores computed canonical forms keyed by graph content
// hash. Canonicalization is a pure function, so a cached form never goes
// stale; TTLs exist only to bound storage.
//
// Three backends are provided:
//   - [FileCache]: file-based storage for CLI usage
//   - [RedisCache]: Redis-backed storage for the diff service
//   - [NullCache]: no-op cache for tests or when caching is disabled
package cache

import (
	"context"
	"time"

	"github.com/grapheq/grapheq/pkg/observability"
)

// Cache is the storage contract shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Cached looks up key and, on a miss, computes the value, stores it, and
// returns it. Backend write failures are not fatal: the computed value
// is still returned.
func Cached(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "canonical")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "canonical")

	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "canonical", len(data))
	}
	return data, false, nil
}
