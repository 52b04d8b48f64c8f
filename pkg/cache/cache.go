// Package cache stores pipeline results keyed by content hash.
//
// Parsing a curriculum, laying it out and rendering it are all pure
// functions of their inputs, so each stage's output can be reused whenever
// its key matches. [Keyer] builds those keys; [Cache] stores the bytes.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared cache for several servers
//   - [MongoCache]: shared cache with a TTL index
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// [Open] picks a backend from a URL.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A ttl of zero means the
// entry does not expire. Get reports a miss as (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
