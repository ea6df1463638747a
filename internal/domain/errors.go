package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidRoutingKey   = errors.New("invalid routing key")
	ErrEmptyPayload        = errors.New("empty payload")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInternalServerError = errors.New("internal server error")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrCircuitBreakerOpen  = errors.New("circuit breaker open")
	ErrBrokerUnavailable   = errors.New("broker unavailable")
	ErrUndecodableMessage  = errors.New("undecodable message")
)

type DomainError struct {
	Code       string
	Message    string
	StatusCode int
	Cause      error
	Details    map[string]any
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}

	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewDomainError(code, message string, statusCode int, cause error) *DomainError {
	return &DomainError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
		Details:    make(map[string]any),
	}
}

func (e *DomainError) WithDetails(key string, value any) *DomainError {
	e.Details[key] = value

	return e
}

func NewInvalidRoutingKeyError(routingKey, reason string) *DomainError {
	return NewDomainError(
		"INVALID_ROUTING_KEY",
		fmt.Sprintf("Invalid routing key %q: %s", routingKey, reason),
		http.StatusBadRequest,
		ErrInvalidRoutingKey,
	).WithDetails("routing_key", routingKey)
}

func NewEmptyPayloadError() *DomainError {
	return NewDomainError(
		"EMPTY_PAYLOAD",
		"Message payload must not be empty",
		http.StatusBadRequest,
		ErrEmptyPayload,
	)
}

func NewPayloadTooLargeError(size, limit int) *DomainError {
	return NewDomainError(
		"PAYLOAD_TOO_LARGE",
		fmt.Sprintf("Message payload of %d bytes exceeds the %d bytes limit", size, limit),
		http.StatusRequestEntityTooLarge,
		ErrPayloadTooLarge,
	).WithDetails("size", size).WithDetails("limit", limit)
}

func NewInvalidRequestError(message string, cause error) *DomainError {
	return NewDomainError(
		"BAD_REQUEST",
		message,
		http.StatusBadRequest,
		errors.Join(ErrInvalidRequest, cause),
	)
}

func NewRateLimitError(message string) *DomainError {
	return NewDomainError(
		"RATE_LIMITING_EXCEEDED",
		message,
		http.StatusTooManyRequests,
		ErrRateLimitExceeded,
	)
}

func NewBrokerUnavailableError(cause error) *DomainError {
	return NewDomainError(
		"BROKER_UNAVAILABLE",
		"Message broker is unavailable",
		http.StatusServiceUnavailable,
		errors.Join(ErrBrokerUnavailable, cause),
	)
}

func NewUndecodableMessageError(messageID string, cause error) *DomainError {
	return NewDomainError(
		"UNDECODABLE_MESSAGE",
		fmt.Sprintf("Message %s could not be decoded", messageID),
		http.StatusUnprocessableEntity,
		errors.Join(ErrUndecodableMessage, cause),
	).WithDetails("message_id", messageID)
}

func NewInternalServerError(message string, cause error) *DomainError {
	return NewDomainError(
		"INTERNAL_SERVER_ERROR",
		message,
		http.StatusInternalServerError,
		errors.Join(ErrInternalServerError, cause),
	)
}
