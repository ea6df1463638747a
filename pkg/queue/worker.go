package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const workerRole = "worker"

// MessageHandler processes one delivery. It owns the disposition of the message:
// the worker never acks, nacks or rejects on its own, not even when the handler fails.
type MessageHandler func(ctx context.Context, msg Message, ctrl *MsgController) error

// WorkerConfig describes the topology a worker re-declares on every connection.
type WorkerConfig struct {
	Queue QueueSpec
	// Exchange and BindingKey are both needed for the queue to be bound.
	Exchange      *ExchangeSpec
	BindingKey    string
	PrefetchCount int
	ConsumerTag   string
}

func (c WorkerConfig) shouldBind() bool {
	return c.skipBindReason() == ""
}

func (c WorkerConfig) skipBindReason() string {
	switch {
	case c.Exchange == nil:
		return "no exchange provided"
	case c.Exchange.IsDefault():
		return "default exchange routes by queue name"
	case c.BindingKey == "":
		return "no binding key provided"
	default:
		return ""
	}
}

// Worker consumes one queue over a channel it owns and resumes after every reconnection.
type Worker struct {
	source  ConnectionSource
	cfg     WorkerConfig
	handler MessageHandler
	opts    workerOptions
	tracer  trace.Tracer

	mu     sync.Mutex
	ch     Channel
	epoch  uint64
	closed bool

	ctx         context.Context
	cancel      context.CancelFunc
	dispatchers sync.WaitGroup
	unsubscribe func()
}

// NewWorker validates cfg and subscribes the worker to source.
func NewWorker(source ConnectionSource, cfg WorkerConfig, handler MessageHandler, opts ...WorkerOption) (*Worker, error) {
	if source == nil {
		return nil, newConfigurationError(workerRole, "connection source", "required")
	}

	if handler == nil {
		return nil, newConfigurationError(workerRole, "message handler", "required")
	}

	if cfg.PrefetchCount < 0 {
		return nil, newConfigurationError(workerRole, "prefetch count", fmt.Sprintf("must not be negative, got %d", cfg.PrefetchCount))
	}

	if cfg.Exchange != nil {
		if err := cfg.Exchange.validate(workerRole); err != nil {
			return nil, err
		}
	}

	if cfg.ConsumerTag == "" {
		cfg.ConsumerTag = "worker-" + uuid.NewString()
	}

	options := defaultWorkerOptions()
	for _, opt := range opts {
		opt(&options)
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Worker{
		source:  source,
		cfg:     cfg,
		handler: handler,
		opts:    options,
		tracer:  tracerFrom(options.tracer),
		ctx:     ctx,
		cancel:  cancel,
	}

	w.unsubscribe = source.Subscribe(w)

	return w, nil
}

// Ready reports whether the worker is consuming.
func (w *Worker) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.ch != nil
}

// Close cancels the consumer, waits for in-flight handlers until ctx expires and closes the channel.
func (w *Worker) Close(ctx context.Context) error {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()

		return nil
	}

	w.closed = true
	w.epoch++
	ch := w.ch
	w.ch = nil
	w.mu.Unlock()

	w.unsubscribe()

	if ch != nil {
		if err := ch.Cancel(w.cfg.ConsumerTag, false); err != nil {
			w.opts.logger.Warn().Err(err).Str("consumer", w.cfg.ConsumerTag).Msg("unable to cancel consumer")
		}
	}

	idle := make(chan struct{})

	go func() {
		w.dispatchers.Wait()
		close(idle)
	}()

	var waitErr error

	select {
	case <-idle:
	case <-ctx.Done():
		waitErr = fmt.Errorf("waiting for in-flight handlers: %w", ctx.Err())
	}

	w.cancel()

	if ch == nil {
		return waitErr
	}

	if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.Join(waitErr, &ChannelError{Role: workerRole, Op: "close", Err: err, Timestamp: time.Now()})
	}

	return waitErr
}

// OnConnected re-declares the topology and resumes consuming on conn.
func (w *Worker) OnConnected(conn Connection) {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()

		return
	}

	w.epoch++
	epoch := w.epoch
	w.mu.Unlock()

	if err := w.start(conn, epoch); err != nil {
		w.opts.logger.Error().Err(err).Str("queue", w.cfg.Queue.Name).Msg("unable to start worker, waiting for the next connection")
	}
}

// OnDisconnected drops the channel. Deliveries already dispatched finish on their own.
func (w *Worker) OnDisconnected(err error) {
	w.mu.Lock()
	w.epoch++
	w.ch = nil
	w.mu.Unlock()

	event := w.opts.logger.Info()
	if err != nil {
		event = w.opts.logger.Warn().Err(err)
	}

	event.Str("queue", w.cfg.Queue.Name).Msg("worker lost its connection")
}

func (w *Worker) start(conn Connection, epoch uint64) error {
	ch, err := conn.Channel()
	if err != nil {
		return &ChannelError{Role: workerRole, Op: "open", Err: err, Timestamp: time.Now()}
	}

	closeCh := ch.NotifyClose(make(chan *amqp.Error, 1))

	deliveries, queueName, err := w.consume(ch)
	if err != nil {
		_ = ch.Close()

		return err
	}

	w.mu.Lock()

	if w.closed || w.epoch != epoch {
		w.mu.Unlock()
		_ = ch.Close()

		return &ChannelError{Role: workerRole, Op: "open", Err: ErrNotConnected, Timestamp: time.Now()}
	}

	w.ch = ch
	w.dispatchers.Add(1)
	w.mu.Unlock()

	go w.dispatch(deliveries, newMsgController(ch, queueName, w.opts.maxRequeues), queueName)
	go w.watchChannel(ch, closeCh)

	w.opts.logger.Info().
		Str("queue", queueName).
		Str("consumer", w.cfg.ConsumerTag).
		Int("prefetch", w.cfg.PrefetchCount).
		Msg("worker consuming")

	return nil
}

func (w *Worker) consume(ch Channel) (<-chan amqp.Delivery, string, error) {
	queue, err := w.cfg.Queue.declare(ch)
	if err != nil {
		return nil, "", &ChannelError{Role: workerRole, Op: "declare queue", Err: fmt.Errorf("queue %q: %w", w.cfg.Queue.Name, err), Timestamp: time.Now()}
	}

	if w.cfg.shouldBind() {
		if err := w.cfg.Exchange.declare(ch); err != nil {
			return nil, "", &ChannelError{Role: workerRole, Op: "declare exchange", Err: fmt.Errorf("exchange %q: %w", w.cfg.Exchange.Name, err), Timestamp: time.Now()}
		}

		if err := ch.QueueBind(queue.Name, w.cfg.BindingKey, w.cfg.Exchange.Name, false, nil); err != nil {
			return nil, "", &ChannelError{Role: workerRole, Op: "bind queue", Err: err, Timestamp: time.Now()}
		}
	} else {
		w.opts.logger.Warn().Str("queue", queue.Name).Msg(w.cfg.skipBindReason() + ", skipping binding")
	}

	if err := ch.Qos(w.cfg.PrefetchCount, 0, false); err != nil {
		return nil, "", &ChannelError{Role: workerRole, Op: "qos", Err: err, Timestamp: time.Now()}
	}

	deliveries, err := ch.Consume(
		queue.Name,
		w.cfg.ConsumerTag,
		false, // auto-ack
		w.cfg.Queue.Exclusive,
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, "", &ChannelError{Role: workerRole, Op: "consume", Err: err, Timestamp: time.Now()}
	}

	return deliveries, queue.Name, nil
}

func (w *Worker) dispatch(deliveries <-chan amqp.Delivery, ctrl *MsgController, queueName string) {
	defer w.dispatchers.Done()

	for delivery := range deliveries {
		w.handle(ctrl, queueName, delivery)
	}
}

// handle runs the handler for one delivery and contains its failures.
func (w *Worker) handle(ctrl *MsgController, queueName string, delivery amqp.Delivery) {
	msg := messageFromDelivery(delivery)

	ctx, span := w.tracer.Start(extractTraceContext(w.ctx, delivery.Headers), "queue.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination.name", queueName),
			attribute.String("messaging.message.id", msg.MessageID),
		),
	)
	defer span.End()

	started := time.Now()
	outcome := DeliveryHandled

	defer func() {
		if r := recover(); r != nil {
			outcome = DeliveryPanicked
			handlerErr := &HandlerError{Queue: queueName, MessageID: msg.MessageID, Panic: r}

			span.RecordError(handlerErr)
			span.SetStatus(codes.Error, "handler panicked")
			w.opts.logger.Error().Err(handlerErr).Msg("message handler panicked, message left to the broker")
		}

		w.opts.observer.Delivered(queueName, outcome, time.Since(started))
	}()

	if err := w.handler(ctx, msg, ctrl); err != nil {
		outcome = DeliveryFailed
		handlerErr := &HandlerError{Queue: queueName, MessageID: msg.MessageID, Err: err}

		span.RecordError(handlerErr)
		span.SetStatus(codes.Error, "handler failed")
		w.opts.logger.Error().Err(handlerErr).Msg("message handler failed")
	}
}

func (w *Worker) watchChannel(ch Channel, closeCh <-chan *amqp.Error) {
	amqpErr, ok := <-closeCh

	w.mu.Lock()

	if w.ch != ch {
		w.mu.Unlock()

		return
	}

	w.ch = nil
	w.mu.Unlock()

	var cause error = amqp.ErrClosed
	if ok && amqpErr != nil {
		cause = amqpErr
	}

	w.opts.logger.Warn().
		Err(&ChannelError{Role: workerRole, Op: "closed", Err: cause, Timestamp: time.Now()}).
		Str("queue", w.cfg.Queue.Name).
		Msg("worker channel closed, waiting for the next connection")
}
