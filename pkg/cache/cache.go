package cache

import (
	"context"
)

// Option is an option for creating new cache.
type Option func(Cache)

// Cache is a caching interface.
type Cache interface {
	Get(ctx context.Context, key string) (value any, ok bool)
	Set(ctx context.Context, key string, val any)
	Keys(ctx context.Context) []string
	Len(ctx context.Context) int64
	Contains(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string)
}
