package lru

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/cache"
	"github.com/matryer/is"
)

func TestRegistered(t *testing.T) {
	is := is.New(t)
	c, err := cache.New(context.TODO(), "lru", WithSize(2))
	is.NoErr(err)
	_, ok := c.(*Cache)
	is.True(ok)
}

func TestEviction(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	var evicted []string
	c, err := NewCache(ctx, WithSize(2), WithEvictCallback(func(key string, _ any) {
		evicted = append(evicted, key)
	}))
	is.NoErr(err)

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	_, _ = c.Get(ctx, "a")
	c.Set(ctx, "c", 3)

	is.Equal(evicted, []string{"b"})
	is.Equal(c.Len(ctx), int64(2))
	is.True(c.Contains(ctx, "a"))
	is.True(!c.Contains(ctx, "b"))
	is.Equal(c.Keys(ctx), []string{"a", "c"})

	c.Delete(ctx, "a")
	v, ok := c.Get(ctx, "a")
	is.True(!ok)
	is.Equal(v, nil)
}

func TestTTL(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	c, err := NewCache(ctx, WithSize(4), WithTTL(20*time.Millisecond))
	is.NoErr(err)

	c.Set(ctx, "dataset", "value")
	v, ok := c.Get(ctx, "dataset")
	is.True(ok)
	is.Equal(v, "value")

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get(ctx, "dataset")
	is.True(!ok)
}
