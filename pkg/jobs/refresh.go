package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
)

func init() {
	Register("refresh", refresh{})
}

// Refresher is a provider whose data can be reloaded.
type Refresher interface {
	Refresh(context.Context) error
}

var _ Refresher = (*provider.Dataset)(nil)

// refresh reloads the dataset of the context provider.
type refresh struct{}

var _ Runner = refresh{}

// Spec implements Runner.
func (refresh) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return ""
	}
	return cfg.Dataset.Refresh
}

// Func implements Runner.
func (refresh) Func(ctx context.Context) func(context.Context) error {
	logger := log.FromContext(ctx).WithPrefix("jobs.refresh")
	r, ok := provider.FromContext(ctx).(Refresher)
	return func(ctx context.Context) error {
		if !ok {
			logger.Debug("provider cannot be refreshed")
			return nil
		}
		if err := r.Refresh(ctx); err != nil {
			return err //nolint:wrapcheck
		}
		logger.Info("dataset refreshed")
		return nil
	}
}
