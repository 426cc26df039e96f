package provider

import (
	"context"

	"github.com/charmbracelet/soft-orgs/pkg/cache"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"golang.org/x/sync/singleflight"
)

// Cached memoizes the organizations of a provider in a cache. Concurrent
// loads of an empty cache share a single call to the provider.
type Cached struct {
	p     Provider
	cache cache.Cache
	key   string
	group singleflight.Group
}

var _ Provider = (*Cached)(nil)

// NewCached returns a provider that stores the result of p under key.
func NewCached(p Provider, c cache.Cache, key string) *Cached {
	return &Cached{p: p, cache: c, key: key}
}

// Organizations implements Provider.
func (c *Cached) Organizations(ctx context.Context) ([]proto.Organization, error) {
	if v, ok := c.cache.Get(ctx, c.key); ok {
		if orgs, ok := v.([]proto.Organization); ok {
			return orgs, nil
		}
	}

	// The shared load outlives any single caller.
	ch := c.group.DoChan(c.key, func() (any, error) {
		orgs, err := c.p.Organizations(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.cache.Set(ctx, c.key, orgs)
		return orgs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]proto.Organization), nil
	}
}

// Invalidate drops the cached organizations.
func (c *Cached) Invalidate(ctx context.Context) {
	c.cache.Delete(ctx, c.key)
}
