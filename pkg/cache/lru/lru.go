package lru

import (
	"context"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/cache"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	cache.Register("lru", NewCache)
}

// store is the subset of the lru caches used by Cache.
type store interface {
	Add(key string, value any) bool
	Get(key string) (any, bool)
	Contains(key string) bool
	Remove(key string) bool
	Keys() []string
	Len() int
}

// Cache is a memory cache that uses a LRU cache policy. Entries optionally
// expire after a time to live.
type Cache struct {
	cache   store
	onEvict func(key string, value any)
	size    int
	ttl     time.Duration
}

var _ cache.Cache = (*Cache)(nil)

// WithSize sets the cache size.
func WithSize(s int) cache.Option {
	return func(c cache.Cache) {
		ca := c.(*Cache)
		ca.size = s
	}
}

// WithTTL expires entries d after they were set. Zero disables expiration.
func WithTTL(d time.Duration) cache.Option {
	return func(c cache.Cache) {
		ca := c.(*Cache)
		ca.ttl = d
	}
}

// WithEvictCallback sets the eviction callback.
func WithEvictCallback(cb func(key string, value any)) cache.Option {
	return func(c cache.Cache) {
		ca := c.(*Cache)
		ca.onEvict = cb
	}
}

// NewCache returns a new Cache.
func NewCache(_ context.Context, opts ...cache.Option) (cache.Cache, error) {
	c := &Cache{}
	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		c.size = 1
	}

	if c.ttl > 0 {
		c.cache = expirable.NewLRU[string, any](c.size, c.onEvict, c.ttl)
		return c, nil
	}

	l, err := lru.NewWithEvict[string, any](c.size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.cache = l

	return c, nil
}

// Delete implements cache.Cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.cache.Remove(key)
}

// Get implements cache.Cache.
func (c *Cache) Get(_ context.Context, key string) (value any, ok bool) {
	value, ok = c.cache.Get(key)
	return
}

// Keys implements cache.Cache.
func (c *Cache) Keys(_ context.Context) []string {
	return c.cache.Keys()
}

// Set implements cache.Cache.
func (c *Cache) Set(_ context.Context, key string, val any) {
	c.cache.Add(key, val)
}

// Len implements cache.Cache.
func (c *Cache) Len(_ context.Context) int64 {
	return int64(c.cache.Len())
}

// Contains implements cache.Cache.
func (c *Cache) Contains(_ context.Context, key string) bool {
	return c.cache.Contains(key)
}
