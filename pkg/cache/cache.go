// Package cache stores aggregation results keyed by input and options.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [MemoryCache]: a size-bounded LRU, for a single server process
//   - [RedisCache]: shared across server instances
//
// All backends store opaque bytes with an optional TTL. Expired entries read
// as misses.
//
// # Keys
//
// A [Keyer] derives keys from the hash of the input table and the options that
// influence the result. [ScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs.
const (
	// TTLResult bounds how long an aggregation result is reused.
	TTLResult = 24 * time.Hour
)
