// Package cache memoizes rendered diagram artifacts.
//
// A [Cache] stores opaque byte slices under string keys produced by a
// [Keyer]. Three backends are provided:
//
//   - [NullCache] never stores anything and is used when caching is disabled
//   - [FileCache] keeps entries on local disk for the CLI
//   - [RedisCache] shares entries between API server replicas
//
// Backends treat a missing or expired entry as a miss, never as an error.
// Errors are reserved for I/O failures; network failures from Redis wrap
// [ErrNetwork] so that callers can retry them with [RetryWithBackoff].
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// ArtifactTTL bounds how long a rendered artifact is reused.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
