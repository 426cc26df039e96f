package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/soft-orgs/pkg/cache"
	_ "github.com/charmbracelet/soft-orgs/pkg/cache/lru"
	"github.com/charmbracelet/soft-orgs/pkg/cache/noop"
	"github.com/matryer/is"
)

func TestRegistry(t *testing.T) {
	is := is.New(t)
	is.Equal(cache.Backends(), []string{"lru", "noop"})

	_, err := cache.New(context.TODO(), "redis")
	is.True(errors.Is(err, cache.ErrCacheNotFound))
}

func TestContext(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	is.Equal(cache.FromContext(ctx), nil)
	is.Equal(cache.WithContext(ctx, nil), ctx)

	c, err := noop.NewCache(ctx)
	is.NoErr(err)
	ctx = cache.WithContext(ctx, c)
	is.Equal(cache.FromContext(ctx), c)

	c.Set(ctx, "k", 1)
	_, ok := c.Get(ctx, "k")
	is.True(!ok)
	is.Equal(c.Len(ctx), int64(0))
}
