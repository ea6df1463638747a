package middleware

import (
	"net/http"
	"strings"
)

var defaultProbeEndpoints = []string{"/v1/health", "/healthz", "/metrics"}

// HealthCheckFilter keeps probe and scrape traffic out of the access log.
// Only reads of the exact probe paths are filtered, publishing is always logged.
type HealthCheckFilter struct {
	endpoints       map[string]struct{}
	logHealthChecks bool
}

// NewHealthCheckFilter filters the given endpoints, or the relay defaults when none are given.
func NewHealthCheckFilter(logHealthChecks bool, endpoints ...string) *HealthCheckFilter {
	if len(endpoints) == 0 {
		endpoints = defaultProbeEndpoints
	}

	set := make(map[string]struct{}, len(endpoints))
	for _, endpoint := range endpoints {
		set[strings.TrimSuffix(endpoint, "/")] = struct{}{}
	}

	return &HealthCheckFilter{
		endpoints:       set,
		logHealthChecks: logHealthChecks,
	}
}

func (h *HealthCheckFilter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.logHealthChecks || !h.isProbe(r) {
			next.ServeHTTP(w, r)

			return
		}

		next.ServeHTTP(w, r.WithContext(withoutAccessLog(r.Context())))
	})
}

func (h *HealthCheckFilter) isProbe(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	_, ok := h.endpoints[strings.TrimSuffix(r.URL.Path, "/")]

	return ok
}
