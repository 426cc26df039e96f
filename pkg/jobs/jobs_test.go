package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/matryer/is"
)

type refresher struct {
	provider.Provider
	calls int
	err   error
}

func (r *refresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

func TestList(t *testing.T) {
	is := is.New(t)
	var names []string
	for _, j := range List() {
		names = append(names, j.Name)
	}
	is.Equal(names, []string{"refresh"})
}

func TestRefreshSpec(t *testing.T) {
	is := is.New(t)
	is.Equal(refresh{}.Spec(context.Background()), "")

	cfg := config.DefaultConfig()
	cfg.Dataset.Refresh = "@every 1m"
	is.Equal(refresh{}.Spec(config.WithContext(context.Background(), cfg)), "@every 1m")
}

func TestRefreshFunc(t *testing.T) {
	is := is.New(t)
	r := &refresher{Provider: provider.Static(nil)}
	ctx := provider.WithContext(context.Background(), r)

	fn := refresh{}.Func(ctx)
	is.NoErr(fn(ctx))
	is.Equal(r.calls, 1)

	boom := errors.New("boom")
	r.err = boom
	is.True(errors.Is(fn(ctx), boom))

	// Providers without Refresh are skipped.
	static := provider.WithContext(context.Background(), provider.Static(nil))
	is.NoErr(refresh{}.Func(static)(static))
}
