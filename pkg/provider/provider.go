// Package provider produces the organizations displayed by the dashboard.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/soft-orgs/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrNoDatabase is returned when the database source is used without a
	// database.
	ErrNoDatabase = errors.New("no database in context")

	// ErrNoProvider is returned when no provider is available.
	ErrNoProvider = errors.New("no provider in context")
)

// Provider loads organizations along with their users.
type Provider interface {
	// Organizations returns every organization. It returns ctx.Err() when ctx
	// is done before the organizations are available.
	Organizations(ctx context.Context) ([]proto.Organization, error)
}

// Func is a function implementing Provider.
type Func func(ctx context.Context) ([]proto.Organization, error)

// Organizations implements Provider.
func (f Func) Organizations(ctx context.Context) ([]proto.Organization, error) {
	return f(ctx)
}

// Static returns a provider that always returns orgs.
func Static(orgs []proto.Organization) Provider {
	return Func(func(ctx context.Context) ([]proto.Organization, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return orgs, nil
	})
}

var (
	loadSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "soft_orgs",
		Subsystem: "provider",
		Name:      "load_seconds",
		Help:      "The time it takes to load organizations",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	loadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "soft_orgs",
		Subsystem: "provider",
		Name:      "load_errors_total",
		Help:      "The total number of failed organization loads",
	}, []string{"source"})
)

type instrumented struct {
	source string
	p      Provider
}

// Instrument records load durations and failures of p under the source
// label.
func Instrument(source string, p Provider) Provider {
	return &instrumented{source: source, p: p}
}

// Organizations implements Provider.
func (i *instrumented) Organizations(ctx context.Context) ([]proto.Organization, error) {
	start := time.Now()
	orgs, err := i.p.Organizations(ctx)
	if err != nil {
		loadErrors.WithLabelValues(i.source).Inc()
		return nil, err
	}
	loadSeconds.WithLabelValues(i.source).Observe(time.Since(start).Seconds())
	return orgs, nil
}

// ContextKey is the context key for the provider.
var ContextKey = &struct{ string }{"provider"}

// WithContext returns a new context with the provider.
func WithContext(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, ContextKey, p)
}

// FromContext returns the provider from the context.
func FromContext(ctx context.Context) Provider {
	if p, ok := ctx.Value(ContextKey).(Provider); ok {
		return p
	}
	return nil
}
