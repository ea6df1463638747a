package queue

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeDirect  = amqp.ExchangeDirect
	ExchangeFanout  = amqp.ExchangeFanout
	ExchangeTopic   = amqp.ExchangeTopic
	ExchangeHeaders = amqp.ExchangeHeaders
)

// ExchangeSpec describes an exchange declared on every channel (re)establishment.
// The empty name is the broker's default exchange and is never declared.
type ExchangeSpec struct {
	Name       string
	Kind       string
	Durable    bool
	AutoDelete bool
	Internal   bool
	Args       amqp.Table
}

// IsDefault reports whether this is the default exchange, which is never declared.
func (s ExchangeSpec) IsDefault() bool {
	return s.Name == ""
}

func (s ExchangeSpec) validate(component string) error {
	if !s.IsDefault() && s.Kind == "" {
		return newConfigurationError(component, "exchange kind", "required for exchange "+s.Name)
	}

	return nil
}

func (s ExchangeSpec) declare(ch Channel) error {
	if s.IsDefault() {
		return nil
	}

	return ch.ExchangeDeclare(s.Name, s.Kind, s.Durable, s.AutoDelete, s.Internal, false, s.Args)
}

// QueueSpec describes a queue declared on every channel (re)establishment.
type QueueSpec struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	Args       amqp.Table
}

func (s QueueSpec) declare(ch Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(s.Name, s.Durable, s.AutoDelete, s.Exclusive, false, s.Args)
}
