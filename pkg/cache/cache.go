// Package cache stores rendered artifacts keyed by request content.
//
// The HTTP render service uses it to avoid re-rendering identical
// requests. Backends:
//   - memory: In-process map for development/testing
//   - file: Hash-sharded files for single-instance deployments
//   - redis: Shared backend for multi-instance deployments
//   - null: Caching disabled
//
// Keys are SHA-256 hashes of the full render request (series plus
// options), so any change to the inputs produces a distinct entry.
package cache

import (
	"context"
	"time"

	"github.com/plotkit/plotkit/pkg/plot"
)

// Cache is the interface implemented by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means the
	// entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKey derives the cache key for a render request. Identical
// series and options always hash to the same key.
func RenderKey(xs, ys []float64, opts plot.Options) string {
	return hashKey("render", xs, ys, opts)
}
