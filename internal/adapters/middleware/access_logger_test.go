package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestAccessLogger_Middleware(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	cases := []struct {
		name          string
		method        string
		path          string
		query         string
		statusCode    int
		expectedLevel string
		skipAccessLog bool
		withRequestID bool
		withTrace     bool
		referer       string
	}{
		{
			name:          "accepted publish logs info level",
			method:        http.MethodPost,
			path:          "/v1/messages/orders.created",
			statusCode:    http.StatusAccepted,
			expectedLevel: "info",
		},
		{
			name:          "invalid routing key logs warn level",
			method:        http.MethodPost,
			path:          "/v1/messages/bad%20key",
			statusCode:    http.StatusBadRequest,
			expectedLevel: "warn",
		},
		{
			name:          "unhealthy broker logs error level",
			method:        http.MethodGet,
			path:          "/v1/health",
			statusCode:    http.StatusServiceUnavailable,
			expectedLevel: "error",
		},
		{
			name:          "skipped access log stays silent",
			method:        http.MethodGet,
			path:          "/v1/health",
			statusCode:    http.StatusOK,
			skipAccessLog: true,
		},
		{
			name:          "includes the chi request id",
			method:        http.MethodPost,
			path:          "/v1/messages/orders.created",
			statusCode:    http.StatusAccepted,
			withRequestID: true,
			expectedLevel: "info",
		},
		{
			name:          "includes the active trace id",
			method:        http.MethodPost,
			path:          "/v1/messages/orders.created",
			query:         "dry=1",
			statusCode:    http.StatusAccepted,
			withTrace:     true,
			expectedLevel: "info",
		},
		{
			name:          "includes the referer",
			method:        http.MethodGet,
			path:          "/v1/health",
			statusCode:    http.StatusOK,
			referer:       "https://ops.example.com",
			expectedLevel: "info",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			accessLogger := NewAccessLogger(zerolog.New(&buf))

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(`{"ok":true}`))
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.URL.RawQuery = tc.query

			ctx := req.Context()

			if tc.skipAccessLog {
				ctx = withoutAccessLog(ctx)
			}

			if tc.withRequestID {
				ctx = context.WithValue(ctx, chimiddleware.RequestIDKey, "relay/abc-000001")
			}

			if tc.withTrace {
				ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
					TraceID:    traceID,
					SpanID:     spanID,
					TraceFlags: trace.FlagsSampled,
				}))
			}

			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}

			rec := httptest.NewRecorder()
			accessLogger.Middleware(handler).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tc.statusCode, rec.Code)

			if tc.skipAccessLog {
				assert.Empty(t, buf.String())

				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())

			assert.Equal(t, tc.expectedLevel, entry["level"])
			assert.Equal(t, "http_access", entry["component"])
			assert.Equal(t, tc.method, entry["method"])
			assert.Equal(t, tc.query, entry["query"])
			assert.Equal(t, float64(tc.statusCode), entry["status_code"])
			assert.Equal(t, float64(len(`{"ok":true}`)), entry["response_size_bytes"])
			assert.Contains(t, entry, "duration_ms")

			if tc.withRequestID {
				assert.Equal(t, "relay/abc-000001", entry["request_id"])
			} else {
				assert.NotContains(t, entry, "request_id")
			}

			if tc.withTrace {
				assert.Equal(t, traceID.String(), entry["trace_id"])
			} else {
				assert.NotContains(t, entry, "trace_id")
			}

			if tc.referer != "" {
				assert.Equal(t, tc.referer, entry["referer"])
			}
		})
	}
}
