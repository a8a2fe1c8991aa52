package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/automaton-ml/internal/infra/monitoring"
)

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	monitoring.Register()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		monitoring.HTTPRequestsInFlight.Inc()
		defer monitoring.HTTPRequestsInFlight.Dec()

		// Wrap response writer to capture status
		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		// Label with the matched route pattern so unknown paths don't
		// blow up series cardinality.
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		monitoring.HTTPRequestsTotal.WithLabelValues(
			r.Method,
			path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()
	})
}
