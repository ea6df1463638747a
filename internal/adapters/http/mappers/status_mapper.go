package mappers

import (
	"errors"
	"net/http"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
)

// HealthStatusToHTTP answers 503 only when the service cannot accept messages at all.
func HealthStatusToHTTP(status domain.HealthResponseStatus) int {
	if status.Operational() {
		return http.StatusOK
	}

	return http.StatusServiceUnavailable
}

func ErrorToHTTPStatus(err error) int {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.StatusCode != 0 {
		return domainErr.StatusCode
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRoutingKey),
		errors.Is(err, domain.ErrEmptyPayload),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUndecodableMessage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrBrokerUnavailable), errors.Is(err, domain.ErrCircuitBreakerOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
