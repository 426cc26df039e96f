package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderJSONError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// errorResponse is the body of failed API requests.
type errorResponse struct {
	Message string `json:"message"`
}

func renderJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck,gosec
}

func renderJSONError(w http.ResponseWriter, _ *http.Request, code int, msg string) {
	renderJSON(w, code, errorResponse{Message: msg})
}
