// Package web serves a read-only JSON API of the organizations dataset.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
)

// HTTPServer serves the JSON API.
type HTTPServer struct {
	cfg    *config.Config
	logger *log.Logger

	Server *http.Server
}

// NewHTTPServer returns the API server of the context config and provider.
func NewHTTPServer(ctx context.Context) (*HTTPServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	logger := log.FromContext(ctx).WithPrefix("http")
	return &HTTPServer{
		cfg:    cfg,
		logger: logger,
		Server: &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           NewRouter(ctx),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *HTTPServer) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "addr", s.cfg.HTTP.ListenAddr)
	return s.Server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the HTTP server.
func (s *HTTPServer) Close() error {
	return s.Server.Close() //nolint:wrapcheck
}
