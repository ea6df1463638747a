package middleware

import (
	"net/http"
)

const (
	apiVersionHeader = "API-Version"
	serverHeader     = "Server"
)

// ServiceHeaders stamps every relay response with the API version and the serving build.
type ServiceHeaders struct {
	apiVersion string
	server     string
}

func NewServiceHeaders(apiVersion, serviceName, serviceVersion string) ServiceHeaders {
	server := serviceName
	if serviceVersion != "" {
		server += "/" + serviceVersion
	}

	return ServiceHeaders{
		apiVersion: apiVersion,
		server:     server,
	}
}

func (mw ServiceHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.apiVersion != "" {
			w.Header().Set(apiVersionHeader, mw.apiVersion)
		}

		if mw.server != "" {
			w.Header().Set(serverHeader, mw.server)
		}

		next.ServeHTTP(w, r)
	})
}
