package provider

import (
	"context"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
)

type delayed struct {
	p Provider
	d time.Duration
}

// Delayed returns a provider that waits d before calling p. The wait is
// interrupted when ctx is done.
func Delayed(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &delayed{p: p, d: d}
}

// Organizations implements Provider.
func (d *delayed) Organizations(ctx context.Context) ([]proto.Organization, error) {
	t := time.NewTimer(d.d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}

	return d.p.Organizations(ctx)
}
