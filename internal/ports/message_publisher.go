//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

//counterfeiter:generate -o ../mocks/message_publisher.go . MessagePublisher
//counterfeiter:generate -o ../mocks/connection_status.go . ConnectionStatus

type (
	// MessagePublisher is the part of *queue.Publisher the services depend on.
	MessagePublisher interface {
		Publish(ctx context.Context, routingKey string, payload []byte, opts ...queue.PublishOption) bool
		Buffered() int
		Ready() bool
	}

	// ConnectionStatus is the read-only view of *queue.ConnectionManager.
	ConnectionStatus interface {
		State() queue.ConnectionState
	}
)
