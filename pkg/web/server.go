package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns the API handler. Requests are logged, given the context
// of ctx, compressed and recovered from panics.
func NewRouter(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	HealthController(ctx, router)
	OrganizationsController(ctx, router)
	router.NotFoundHandler = http.HandlerFunc(renderNotFound)

	var h http.Handler = router
	h = NewLoggingMiddleware(h, log.FromContext(ctx).WithPrefix("http"))
	h = NewContextHandler(ctx)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)
	return h
}
