package queue

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrShuttingDown is returned to callers waiting on a connection attempt that an explicit Disconnect superseded.
	ErrShuttingDown = errors.New("connection manager is shutting down")

	// ErrNotConnected is reported when an operation needs a live connection and there is none.
	ErrNotConnected = errors.New("not connected to the broker")

	// ErrRetryCountExceeded describes that a message has reached the maximum allowed requeue count.
	ErrRetryCountExceeded = errors.New("retries count exceeded")
)

// ConfigurationError reports missing or invalid construction parameters. It is never retried.
type ConfigurationError struct {
	Component string
	Field     string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Component, e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConnectionError wraps a failure to establish or keep the broker connection.
type ConnectionError struct {
	Op        string
	URL       string
	Err       error
	Timestamp time.Time
}

func (e *ConnectionError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("connection %s %s: %v", e.Op, e.URL, e.Err)
	}

	return fmt.Sprintf("connection %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ChannelError wraps a failure to open or configure a channel while a connection exists.
type ChannelError struct {
	Role      string
	Op        string
	Err       error
	Timestamp time.Time
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s channel %s: %v", e.Role, e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}

// PublishError describes a send that failed synchronously. The item it refers to is buffered, never lost.
type PublishError struct {
	Exchange   string
	RoutingKey string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to exchange %q with key %q: %v", e.Exchange, e.RoutingKey, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// HandlerError is what the dispatcher logs when a message handler fails or panics.
type HandlerError struct {
	Queue     string
	MessageID string
	Err       error
	Panic     any
}

func (e *HandlerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("handler for queue %q panicked on message %q: %v", e.Queue, e.MessageID, e.Panic)
	}

	return fmt.Sprintf("handler for queue %q failed on message %q: %v", e.Queue, e.MessageID, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned once a finite retry budget has been used up. It unwraps to the last failure.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

func newConfigurationError(component, field, reason string) error {
	return &ConfigurationError{
		Component: component,
		Field:     field,
		Reason:    reason,
	}
}
