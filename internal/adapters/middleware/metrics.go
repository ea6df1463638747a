package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
)

const unmatchedRoute = "unmatched"

type MetricsMiddleware struct {
	metrics infrastructure.Metrics
}

func NewMetricsMiddleware(metrics infrastructure.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
	}
}

// Middleware records every request under its route pattern, so routing keys never become label values.
func (m *MetricsMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := NewStatusRecorder(w)

		next.ServeHTTP(wrapped, r)

		m.metrics.RecordHTTPRequest(
			r.Context(),
			r.Method,
			routePattern(r),
			wrapped.StatusCode(),
			time.Since(startTime),
			r.ContentLength,
			wrapped.BytesWritten(),
		)
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	return unmatchedRoute
}
