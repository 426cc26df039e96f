package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/soft-orgs/pkg/db"
	"github.com/charmbracelet/soft-orgs/pkg/provider"
	"github.com/gorilla/mux"
)

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness reports whether a provider is configured and, when the
// dataset comes from the database, whether the database answers.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if provider.FromContext(ctx) == nil {
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}

	if dbx := db.FromContext(ctx); dbx != nil {
		if err := dbx.PingContext(ctx); err != nil {
			log.FromContext(ctx).Error("readiness check failed", "err", err)
			renderStatus(http.StatusServiceUnavailable)(w, nil)
			return
		}
	}

	renderStatus(http.StatusOK)(w, nil)
}
