package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
)

type (
	// ThrottledRateLimitingMiddleware applies a GCRA quota, keyed by client address when IP limiting is on.
	ThrottledRateLimitingMiddleware struct {
		limiter   *throttled.HTTPRateLimiterCtx
		skipPaths map[string]struct{}
		logger    infrastructure.Logger
	}

	rateLimitResponse struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
)

func NewThrottledRateLimitingMiddleware(
	cfg config.ThrottledRateLimitingConfig,
	logger infrastructure.Logger,
) (*ThrottledRateLimitingMiddleware, error) {
	store, err := memstore.NewCtx(cfg.MaxKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(cfg.RequestsPerSecond),
		MaxBurst: cfg.BurstSize,
	}

	rateLimiter, err := throttled.NewGCRARateLimiterCtx(store, quota)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	m := &ThrottledRateLimitingMiddleware{
		skipPaths: make(map[string]struct{}, len(cfg.SkipPaths)),
		logger:    logger,
	}

	for _, path := range cfg.SkipPaths {
		m.skipPaths[path] = struct{}{}
	}

	m.limiter = &throttled.HTTPRateLimiterCtx{
		RateLimiter:   rateLimiter,
		VaryBy:        &throttled.VaryBy{RemoteAddr: cfg.EnableIPLimiting},
		DeniedHandler: http.HandlerFunc(m.denied),
		Error:         m.failed,
	}

	return m, nil
}

func (m *ThrottledRateLimitingMiddleware) Middleware(next http.Handler) http.Handler {
	limited := m.limiter.RateLimit(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.skipPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)

			return
		}

		limited.ServeHTTP(w, r)
	})
}

func (m *ThrottledRateLimitingMiddleware) denied(w http.ResponseWriter, r *http.Request) {
	domainErr := domain.NewRateLimitError("Too many requests, retry later")

	m.logger.Warn().
		Str("remote_addr", r.RemoteAddr).
		Str("path", r.URL.Path).
		Msg("request rate limited")

	writeRateLimitResponse(w, domainErr.StatusCode, domainErr.Code, domainErr.Message)
}

func (m *ThrottledRateLimitingMiddleware) failed(w http.ResponseWriter, _ *http.Request, err error) {
	m.logger.Error().Err(err).Msg("rate limiter failed")

	writeRateLimitResponse(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Rate limiter unavailable")
}

func writeRateLimitResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(rateLimitResponse{
		Error:   strings.ToLower(code),
		Message: message,
	})
}
