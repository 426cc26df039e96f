package provider

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/cache"
	"github.com/charmbracelet/soft-orgs/pkg/cache/lru"
	_ "github.com/charmbracelet/soft-orgs/pkg/cache/noop" // noop cache backend
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/charmbracelet/soft-orgs/pkg/store"
)

// Dataset is the provider chain described by the configuration: a source,
// instrumented, cached and delayed.
type Dataset struct {
	source   string
	cached   *Cached
	provider Provider
	logger   *log.Logger
}

var _ Provider = (*Dataset)(nil)

// New returns the dataset configured in the context config. The db source
// needs a database and a store in the context.
func New(ctx context.Context) (*Dataset, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	var source Provider
	switch cfg.Dataset.Source {
	case "mock":
		source = Generator{
			Count:    cfg.Dataset.Organizations,
			MaxUsers: cfg.Dataset.Users,
			Seed:     cfg.Dataset.Seed,
		}
	case "db":
		dbx, s := db.FromContext(ctx), store.FromContext(ctx)
		if dbx == nil || s == nil {
			return nil, ErrNoDatabase
		}
		source = FromStore(dbx, s)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Dataset.Source)
	}

	c := cache.FromContext(ctx)
	if c == nil {
		var err error
		c, err = cache.New(ctx, cfg.Cache.Backend, lru.WithSize(cfg.Cache.Size), lru.WithTTL(cfg.Cache.TTL))
		if err != nil {
			return nil, fmt.Errorf("cache %q: %w", cfg.Cache.Backend, err)
		}
	}

	cached := NewCached(Instrument(cfg.Dataset.Source, source), c, "organizations:"+cfg.Dataset.Source)
	return &Dataset{
		source:   cfg.Dataset.Source,
		cached:   cached,
		provider: Delayed(cached, cfg.Dataset.Delay),
		logger:   log.FromContext(ctx).WithPrefix("provider"),
	}, nil
}

// Source returns the name of the dataset source.
func (d *Dataset) Source() string {
	return d.source
}

// Organizations implements Provider.
func (d *Dataset) Organizations(ctx context.Context) ([]proto.Organization, error) {
	orgs, err := d.provider.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("loaded organizations", "source", d.source, "count", len(orgs))
	return orgs, nil
}

// Refresh drops the cached dataset and loads it again.
func (d *Dataset) Refresh(ctx context.Context) error {
	d.cached.Invalidate(ctx)
	_, err := d.cached.Organizations(ctx)
	return err
}
