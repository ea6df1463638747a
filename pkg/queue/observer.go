package queue

import "time"

// PublishOutcome classifies what happened to a single Publish call or drained item.
type PublishOutcome string

const (
	PublishSent     PublishOutcome = "sent"
	PublishBuffered PublishOutcome = "buffered"
	PublishFailed   PublishOutcome = "failed"
	PublishDropped  PublishOutcome = "dropped"
	PublishNacked   PublishOutcome = "nacked"
)

// DeliveryOutcome classifies how the dispatcher saw a handler return.
type DeliveryOutcome string

const (
	DeliveryHandled  DeliveryOutcome = "handled"
	DeliveryFailed   DeliveryOutcome = "failed"
	DeliveryPanicked DeliveryOutcome = "panicked"
)

// Observer receives instrumentation callbacks. Implementations must be cheap and non-blocking.
type Observer interface {
	ConnectionStateChanged(from, to ConnectionState)
	ConnectAttempted(attempt int, err error)
	Published(exchange string, outcome PublishOutcome)
	BufferDepthChanged(depth int)
	Delivered(queue string, outcome DeliveryOutcome, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ConnectionStateChanged(ConnectionState, ConnectionState) {}
func (noopObserver) ConnectAttempted(int, error) {}
func (noopObserver) Published(string, PublishOutcome) {}
func (noopObserver) BufferDepthChanged(int) {}
func (noopObserver) Delivered(string, DeliveryOutcome, time.Duration) {}
