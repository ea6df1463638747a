package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher and worker rely on.
// *amqp.Channel satisfies it directly, which keeps both roles mockable.
//
//nolint:interfacebloat // mirrors the amqp091 channel surface we use
type Channel interface {
	Close() error
	Confirm(noWait bool) error
	Qos(prefetchCount, prefetchSize int, global bool) error

	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error

	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Cancel(consumer string, noWait bool) error

	NotifyClose(c chan *amqp.Error) chan *amqp.Error
	NotifyFlow(c chan bool) chan bool
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
}

// Connection is the subset of *amqp.Connection the manager hands to its listeners.
type Connection interface {
	Channel() (Channel, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	NotifyBlocked(receiver chan amqp.Blocking) chan amqp.Blocking
	IsClosed() bool
	Close() error
}

// Dialer opens a transport connection. The default dials with amqp091.
type Dialer func(url string, cfg amqp.Config) (Connection, error)

// amqpConnection adapts *amqp.Connection so Channel returns the interface type.
type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	return ch, nil
}

// DialAMQP dials url with amqp091 and wraps the result as a Connection.
func DialAMQP(url string, cfg amqp.Config) (Connection, error) {
	conn, err := amqp.DialConfig(url, cfg)
	if err != nil {
		return nil, err
	}

	return amqpConnection{Connection: conn}, nil
}

var _ Channel = (*amqp.Channel)(nil)
