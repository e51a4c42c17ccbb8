// Package cache provides pluggable result caching for plan computations.
//
// Computed publish plans are cached by the content hash of the manifest
// snapshot that produced them, so re-planning an unchanged workspace is
// a cache hit. Three backends are provided:
//   - NullCache: caching disabled (testing, one-shot CLI runs)
//   - FileCache: local directory cache for CLI usage
//   - RedisCache: shared cache for multi-instance deployments
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached plans stay valid unless overridden.
const DefaultTTL = 24 * time.Hour

// Cache is the interface all cache backends implement.
// Get returns (nil, false, nil) on a miss; errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PlanKey builds the cache key for a plan computed from a manifest
// snapshot with the given content hash.
func PlanKey(snapshotHash string) string {
	return "plan:" + snapshotHash
}
