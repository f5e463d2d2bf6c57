package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"go-file-manager/internal/metrics"
)

// Metrics records request counts and latency per route pattern, so ids in
// the path do not explode the label set.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		metrics.RecordHTTPRequest(r.Method, path, wrapped.status, time.Since(started))
	})
}
