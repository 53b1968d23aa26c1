package cache

import (
	"context"
	"time"
)

// Cache defines the contract shared by every cache tier (Redis, in-memory).
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// Returns (found, error):
	//   - found = true: cache hit, data unmarshaled into dest
	//   - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "carousel:*").
	// Must be idempotent and safe to run concurrently with reads.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the tier is reachable.
	Ping(ctx context.Context) error
}
