package noop

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/cache"
)

func init() {
	cache.Register("noop", NewCache)
}

type noopCache struct{}

// NewCache returns a cache that never stores anything.
func NewCache(_ context.Context, _ ...cache.Option) (cache.Cache, error) {
	return &noopCache{}, nil
}

// Contains implements Cache.
func (*noopCache) Contains(_ context.Context, _ string) bool {
	return false
}

// Delete implements Cache.
func (*noopCache) Delete(_ context.Context, _ string) {}

// Get implements Cache.
func (*noopCache) Get(_ context.Context, _ string) (any, bool) {
	return nil, false
}

// Keys implements Cache.
func (*noopCache) Keys(_ context.Context) []string {
	return []string{}
}

// Len implements Cache.
func (*noopCache) Len(_ context.Context) int64 {
	return 0
}

// Set implements Cache.
func (*noopCache) Set(_ context.Context, _ string, _ any) {}

var _ cache.Cache = &noopCache{}
