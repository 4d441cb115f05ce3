// Package cachemanager provides a generic TTL cache and a read-through
// wrapper used by the taxonomy service for per-session static data.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the interface cache consumers depend on.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
