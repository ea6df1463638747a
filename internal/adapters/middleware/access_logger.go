package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const skipAccessLogKey contextKey = "skip_access_log"

type AccessLogger struct {
	logger zerolog.Logger
}

func NewAccessLogger(logger zerolog.Logger) *AccessLogger {
	return &AccessLogger{
		logger: logger.With().Str("component", "http_access").Logger(),
	}
}

func withoutAccessLog(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAccessLogKey, true)
}

func accessLogSkipped(ctx context.Context) bool {
	skip, ok := ctx.Value(skipAccessLogKey).(bool)

	return ok && skip
}

func (a *AccessLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if accessLogSkipped(r.Context()) {
			next.ServeHTTP(w, r)

			return
		}

		startTime := time.Now()
		wrapped := NewStatusRecorder(w)

		next.ServeHTTP(wrapped, r)

		duration := time.Since(startTime)
		status := wrapped.StatusCode()

		var logEvent *zerolog.Event

		switch {
		case status >= http.StatusInternalServerError:
			logEvent = a.logger.Error()
		case status >= http.StatusBadRequest:
			logEvent = a.logger.Warn()
		default:
			logEvent = a.logger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Str("remote_addr", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Str("proto", r.Proto).
			Str("host", r.Host).
			Int("status_code", status).
			Int64("response_size_bytes", wrapped.BytesWritten()).
			Dur("duration", duration).
			Float64("duration_ms", float64(duration.Microseconds())/1000)

		if requestID := chimiddleware.GetReqID(r.Context()); requestID != "" {
			logEvent.Str("request_id", requestID)
		}

		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			logEvent.Str("trace_id", sc.TraceID().String())
		}

		if referer := r.Referer(); referer != "" {
			logEvent.Str("referer", referer)
		}

		logEvent.Msg("HTTP request completed")
	})
}
