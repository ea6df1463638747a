package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultMaxRetryCount = 10
	retryCountHeader     = "x-retry-count"
)

// Acknowledger settles a delivery with the broker. amqp.Delivery implements it.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
	Reject(requeue bool) error
}

// Message is a consumed delivery.
type Message struct {
	Body          []byte
	ContentType   string
	MessageID     string
	CorrelationID string
	Exchange      string
	RoutingKey    string
	Headers       amqp.Table
	Timestamp     time.Time
	Redelivered   bool
	DeliveryTag   uint64

	acker Acknowledger
}

// NewMessage builds a message around an arbitrary acknowledger, mostly for handler tests.
func NewMessage(body []byte, headers amqp.Table, acker Acknowledger) Message {
	return Message{Body: body, Headers: headers, acker: acker}
}

func messageFromDelivery(d amqp.Delivery) Message {
	return Message{
		Body:          d.Body,
		ContentType:   d.ContentType,
		MessageID:     d.MessageId,
		CorrelationID: d.CorrelationId,
		Exchange:      d.Exchange,
		RoutingKey:    d.RoutingKey,
		Headers:       d.Headers,
		Timestamp:     d.Timestamp,
		Redelivered:   d.Redelivered,
		DeliveryTag:   d.DeliveryTag,
		acker:         d,
	}
}

// Unmarshal parses the JSON body of the receiver and stores the result in the value pointed to by target.
func (m Message) Unmarshal(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.New("target must be a non-nil pointer")
	}

	if err := json.Unmarshal(m.Body, target); err != nil {
		return fmt.Errorf("could not unmarshal into target: %w", err)
	}

	return nil
}

// Data returns the decoded body, see Decode.
func (m Message) Data() any {
	return Decode(m.Body)
}

// RetryCount returns the current number of retries for the receiver message.
func (m Message) RetryCount() (int, error) {
	val, ok := m.Headers[retryCountHeader]
	if !ok {
		return 0, nil
	}

	strVal, ok := val.(string)
	if !ok {
		return 0, fmt.Errorf("header %q does not contain a string", retryCountHeader)
	}

	intVal, err := strconv.Atoi(strVal)
	if err != nil {
		return 0, fmt.Errorf("header %q is not an integer: %w", retryCountHeader, err)
	}

	return intVal, nil
}

func (m Message) acknowledger() (Acknowledger, error) {
	if m.acker == nil {
		return nil, errors.New("message has no acknowledger")
	}

	return m.acker, nil
}

// MsgController settles consumed messages. The worker never does it on its own.
type MsgController struct {
	ch          Channel
	queue       string
	maxRequeues int
}

func newMsgController(ch Channel, queue string, maxRequeues int) *MsgController {
	return &MsgController{ch: ch, queue: queue, maxRequeues: maxRequeues}
}

// Ack is used to positively acknowledge a consumed message.
func (ctrl *MsgController) Ack(m Message) error {
	acker, err := m.acknowledger()
	if err != nil {
		return err
	}

	return acker.Ack(false)
}

// Nack negatively acknowledges a message, optionally asking the broker to requeue it.
func (ctrl *MsgController) Nack(m Message, requeue bool) error {
	acker, err := m.acknowledger()
	if err != nil {
		return err
	}

	return acker.Nack(false, requeue)
}

// Reject is used to negatively acknowledge a consumed message. It will not be requeued.
func (ctrl *MsgController) Reject(m Message) error {
	acker, err := m.acknowledger()
	if err != nil {
		return err
	}

	return acker.Reject(false)
}

// Requeue republishes the message to the tail of its queue with an incremented
// x-retry-count header, then acks the original delivery.
func (ctrl *MsgController) Requeue(ctx context.Context, m Message) error {
	retryCount, err := m.RetryCount()
	if err != nil {
		return fmt.Errorf("failed to get retry count: %w", err)
	}

	if retryCount >= ctrl.maxRequeues {
		return ErrRetryCountExceeded
	}

	acker, err := m.acknowledger()
	if err != nil {
		return err
	}

	if ctrl.ch == nil {
		return ErrNotConnected
	}

	headers := amqp.Table{}
	maps.Copy(headers, m.Headers)
	headers[retryCountHeader] = strconv.Itoa(retryCount + 1)

	err = ctrl.ch.PublishWithContext(
		ctx,
		"",         // default exchange routes by queue name
		ctrl.queue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			Headers:       headers,
			ContentType:   m.ContentType,
			MessageId:     m.MessageID,
			CorrelationId: m.CorrelationID,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
			Body:          m.Body,
		},
	)
	if err != nil {
		return &PublishError{RoutingKey: ctrl.queue, Err: fmt.Errorf("failed to re-publish message: %w", err)}
	}

	if err := acker.Ack(false); err != nil {
		return fmt.Errorf("failed to ack the message: %w", err)
	}

	return nil
}
