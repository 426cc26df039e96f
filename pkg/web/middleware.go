package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/config"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/dustin/go-humanize"
)

// NewContextHandler returns a middleware adding the config, provider,
// database and a request logger to the request context.
func NewContextHandler(ctx context.Context) func(http.Handler) http.Handler {
	cfg := config.FromContext(ctx)
	p := provider.FromContext(ctx)
	dbx := db.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := config.WithContext(r.Context(), cfg)
			ctx = provider.WithContext(ctx, p)
			if dbx != nil {
				ctx = db.WithContext(ctx, dbx)
			}
			ctx = log.WithContext(ctx, logger.With("method", r.Method, "path", r.URL.Path))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder records the status and size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

var _ http.Flusher = (*statusRecorder)(nil)

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.size += n
	return n, err //nolint:wrapcheck
}

// Flush implements http.Flusher.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying http.ResponseWriter.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// NewLoggingMiddleware logs every request. Server errors are logged as
// warnings, everything else at debug level.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		kv := []interface{}{
			"method", r.Method,
			"path", r.URL,
			"addr", r.RemoteAddr,
			"status", rec.status,
			"bytes", humanize.Bytes(uint64(rec.size)), //nolint:gosec
			"took", time.Since(start),
		}
		if rec.status >= http.StatusInternalServerError {
			logger.Warn("request", kv...)
			return
		}
		logger.Debug("request", kv...)
	})
}
