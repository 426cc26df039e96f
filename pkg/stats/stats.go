// Package stats serves the prometheus metrics of the process.
package stats

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsServer exposes /metrics and a /healthz probe.
type StatsServer struct { //nolint:revive
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	server *http.Server
}

// NewStatsServer returns a new StatsServer listening on the configured
// stats address.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	s := &StatsServer{
		ctx:    ctx,
		cfg:    cfg,
		logger: log.FromContext(ctx).WithPrefix("stats"),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.healthz)

	s.server = &http.Server{
		Addr:              cfg.Stats.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 10,
		ReadTimeout:       time.Second * 10,
		WriteTimeout:      time.Second * 10,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return s, nil
}

func (s *StatsServer) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// Handler returns the HTTP handler of the server.
func (s *StatsServer) Handler() http.Handler {
	return s.server.Handler
}

// SetHandler replaces the HTTP handler of the server. It must be called
// before the server starts.
func (s *StatsServer) SetHandler(h http.Handler) {
	s.server.Handler = h
}

// ListenAndServe starts the StatsServer.
func (s *StatsServer) ListenAndServe() error {
	s.logger.Info("starting stats server", "addr", s.cfg.Stats.ListenAddr)
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the StatsServer.
func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the StatsServer.
func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
