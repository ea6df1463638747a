package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const tracerOperation = "http.server"

// Tracer starts a server span per request and extracts the caller's trace context.
func Tracer() func(http.Handler) http.Handler {
	return otelhttp.NewMiddleware(
		tracerOperation,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics"
		}),
	)
}
