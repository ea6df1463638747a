package queue

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/architeacher/svc-amqp-relay/internal/shared/backoff"
)

const (
	publisherRole     = "publisher"
	confirmBufferSize = 128
)

// OutboundItem is one message waiting in the offline buffer.
type OutboundItem struct {
	RoutingKey string
	Payload    []byte
	Options    PublishOptions
	Timestamp  time.Time
}

func (i OutboundItem) publishing() amqp.Publishing {
	deliveryMode := amqp.Transient
	if i.Options.Persistent {
		deliveryMode = amqp.Persistent
	}

	return amqp.Publishing{
		Headers:       amqp.Table(i.Options.Headers),
		ContentType:   i.Options.ContentType,
		DeliveryMode:  deliveryMode,
		Priority:      i.Options.Priority,
		CorrelationId: i.Options.CorrelationID,
		ReplyTo:       i.Options.ReplyTo,
		Expiration:    i.Options.Expiration,
		MessageId:     i.Options.MessageID,
		Timestamp:     i.Timestamp,
		Body:          i.Payload,
	}
}

// Publisher sends messages to one exchange over a confirm channel it owns.
// While no usable channel exists messages wait in a bounded FIFO buffer that a
// single drain loop replays once the channel is back.
type Publisher struct {
	source   ConnectionSource
	exchange ExchangeSpec
	opts     publisherOptions
	tracer   trace.Tracer

	// startMu serializes channel starts so one connection never gets two publisher channels.
	startMu sync.Mutex

	mu       sync.Mutex
	conn     Connection
	ch       Channel
	epoch    uint64
	buffer   []OutboundItem
	paused   bool
	blocked  bool
	nextTag  uint64
	inflight map[uint64]OutboundItem
	closed   bool

	restart     backoff.Strategy
	kick        chan struct{}
	done        chan struct{}
	wg          sync.WaitGroup
	unsubscribe func()
}

// NewPublisher subscribes a publisher for exchange to source. When source is already
// connected the channel is opened before NewPublisher returns.
func NewPublisher(source ConnectionSource, exchange ExchangeSpec, opts ...PublisherOption) (*Publisher, error) {
	if source == nil {
		return nil, newConfigurationError(publisherRole, "connection source", "required")
	}

	if err := exchange.validate(publisherRole); err != nil {
		return nil, err
	}

	options := defaultPublisherOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.timeout <= 0 {
		options.timeout = publishingTimeout
	}

	restart := backoff.NewExponentialStrategy(backoff.Config{
		BaseDelay:  options.restartBase,
		Multiplier: backoff.DefaultMultiplier,
		Jitter:     backoff.DefaultJitter,
		MaxDelay:   options.restartMax,
	})

	p := &Publisher{
		source:   source,
		exchange: exchange,
		opts:     options,
		tracer:   tracerFrom(options.tracer),
		restart:  restart,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	if p.opts.breaker == nil {
		p.opts.breaker = p.defaultBreaker()
	}

	p.wg.Add(1)

	go p.loop()

	p.unsubscribe = source.Subscribe(p)

	return p, nil
}

// Publish hands a message to the broker, or buffers it when that is not possible right now.
// It returns true only when the message went out on the channel. It never fails: a false
// return means the message is buffered (or dropped, when the buffer is full) and will be
// replayed in order once a channel is available.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload []byte, opts ...PublishOption) bool {
	ctx, span := p.tracer.Start(ctx, "queue.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination.name", p.exchange.Name),
			attribute.String("messaging.rabbitmq.destination.routing_key", routingKey),
		),
	)
	defer span.End()

	item := p.newItem(ctx, routingKey, payload, opts)

	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()

		p.opts.logger.Error().Str("routing_key", routingKey).Msg("publish on a closed publisher, message dropped")
		p.opts.observer.Published(p.exchange.Name, PublishDropped)
		span.SetStatus(codes.Error, "publisher closed")

		return false
	}

	if !p.canSendLocked() || len(p.buffer) > 0 {
		p.enqueueLocked(item)
		p.mu.Unlock()

		span.SetAttributes(attribute.Bool("messaging.buffered", true))
		p.requestDrain()

		return false
	}

	if err := p.sendLocked(ctx, item); err != nil {
		p.enqueueLocked(item)
		p.mu.Unlock()

		p.opts.logger.Warn().Err(err).Str("routing_key", routingKey).Msg("publish failed, message buffered")
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")

		return false
	}

	p.mu.Unlock()

	return true
}

// Buffered returns the number of messages waiting for a channel.
func (p *Publisher) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.buffer)
}

// Ready reports whether a Publish call would go straight to the channel.
func (p *Publisher) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.canSendLocked() && !p.closed
}

// Drain asks the drain loop to replay the buffer now, re-opening the channel if needed.
func (p *Publisher) Drain() {
	p.requestDrain()
}

// Close stops the drain loop and closes the channel. Buffered messages are discarded.
func (p *Publisher) Close() error {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()

		return nil
	}

	p.closed = true
	ch := p.ch
	p.ch = nil
	p.conn = nil
	p.epoch++
	remaining := len(p.buffer)
	p.buffer = nil
	p.mu.Unlock()

	p.unsubscribe()
	close(p.done)
	p.wg.Wait()

	if remaining > 0 {
		p.opts.logger.Warn().Int("buffered", remaining).Msg("publisher closed with buffered messages")
		p.opts.observer.BufferDepthChanged(0)
	}

	if ch == nil {
		return nil
	}

	if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return &ChannelError{Role: publisherRole, Op: "close", Err: err, Timestamp: time.Now()}
	}

	return nil
}

// OnConnected opens a fresh channel on conn and schedules a drain of the buffer.
func (p *Publisher) OnConnected(conn Connection) {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()

		return
	}

	p.epoch++
	epoch := p.epoch
	p.conn = conn
	p.blocked = false
	p.mu.Unlock()

	go p.watchBlocked(epoch, conn.NotifyBlocked(make(chan amqp.Blocking, 1)))

	if err := p.start(conn, epoch); err != nil {
		p.opts.logger.Error().Err(err).Msg("unable to start publisher channel, retrying in the background")
	}

	// On failure the drain loop re-attempts the start with backoff.
	p.requestDrain()
}

// OnDisconnected drops the channel reference right away so Publish starts buffering.
func (p *Publisher) OnDisconnected(err error) {
	p.mu.Lock()

	p.epoch++
	p.conn = nil
	p.ch = nil
	unconfirmed := len(p.inflight)
	p.inflight = nil
	p.paused = false
	p.blocked = false
	p.mu.Unlock()

	event := p.opts.logger.Info()
	if err != nil {
		event = p.opts.logger.Warn().Err(err)
	}

	event.Int("unconfirmed", unconfirmed).Msg("publisher lost its connection")
}

func (p *Publisher) newItem(ctx context.Context, routingKey string, payload []byte, opts []PublishOption) OutboundItem {
	options := defaultPublishOptions()
	for _, opt := range opts {
		opt(&options)
	}

	headers := make(map[string]any, len(options.Headers)+2)
	maps.Copy(headers, options.Headers)
	injectTraceContext(ctx, headers)
	options.Headers = headers

	if options.MessageID == "" {
		options.MessageID = uuid.NewString()
	}

	return OutboundItem{
		RoutingKey: routingKey,
		Payload:    payload,
		Options:    options,
		Timestamp:  time.Now(),
	}
}

func (p *Publisher) canSendLocked() bool {
	return p.ch != nil && !p.paused && !p.blocked
}

func (p *Publisher) enqueueLocked(item OutboundItem) {
	if p.opts.bufferLimit > 0 && len(p.buffer) >= p.opts.bufferLimit {
		p.opts.logger.Error().
			Str("routing_key", item.RoutingKey).
			Str("message_id", item.Options.MessageID).
			Int("limit", p.opts.bufferLimit).
			Msg("publish buffer full, message dropped")
		p.opts.observer.Published(p.exchange.Name, PublishDropped)

		return
	}

	p.buffer = append(p.buffer, item)
	p.opts.observer.Published(p.exchange.Name, PublishBuffered)
	p.opts.observer.BufferDepthChanged(len(p.buffer))
}

func (p *Publisher) sendLocked(ctx context.Context, item OutboundItem) error {
	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout)
	defer cancel()

	err := p.ch.PublishWithContext(ctx, p.exchange.Name, item.RoutingKey, item.Options.Mandatory, false, item.publishing())
	if err != nil {
		p.opts.observer.Published(p.exchange.Name, PublishFailed)

		return &PublishError{Exchange: p.exchange.Name, RoutingKey: item.RoutingKey, Err: err}
	}

	p.nextTag++
	p.inflight[p.nextTag] = item
	p.opts.observer.Published(p.exchange.Name, PublishSent)

	return nil
}

func (p *Publisher) requestDrain() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Publisher) loop() {
	defer p.wg.Done()

	var (
		retry    *time.Timer
		retryC   <-chan time.Time
		failures int
	)

	defer func() {
		if retry != nil {
			retry.Stop()
		}
	}()

	for {
		select {
		case <-p.done:
			return
		case <-p.kick:
		case <-retryC:
			retryC = nil
		}

		if p.ensureChannel() {
			failures = 0
			p.drain()

			continue
		}

		if !p.awaitingChannel() {
			failures = 0

			continue
		}

		// The connection is up but the channel is not: try again later even if nobody publishes.
		delay := p.restart.Backoff(failures)
		failures++

		if retry == nil {
			retry = time.NewTimer(delay)
		} else {
			retry.Reset(delay)
		}

		retryC = retry.C

		p.opts.logger.Debug().Dur("retry_in", delay).Int("failures", failures).Msg("publisher channel restart scheduled")
	}
}

// awaitingChannel reports a live connection without a publisher channel.
func (p *Publisher) awaitingChannel() bool {
	p.mu.Lock()
	conn, ch, closed := p.conn, p.ch, p.closed
	p.mu.Unlock()

	return !closed && ch == nil && conn != nil && p.source.Connection() == conn
}

// drain replays the buffer strictly FIFO, one item at a time, and stops at the first failure.
func (p *Publisher) drain() {
	for {
		p.mu.Lock()

		if p.closed || !p.canSendLocked() || len(p.buffer) == 0 {
			p.mu.Unlock()

			return
		}

		item := p.buffer[0]
		p.buffer[0] = OutboundItem{}
		p.buffer = p.buffer[1:]

		err := p.sendLocked(context.Background(), item)
		if err != nil {
			p.buffer = append(p.buffer, item)
		}

		depth := len(p.buffer)
		p.mu.Unlock()

		p.opts.observer.BufferDepthChanged(depth)

		if err != nil {
			p.opts.logger.Warn().Err(err).Int("buffered", depth).Msg("drain stopped, message re-buffered")

			return
		}
	}
}

// ensureChannel re-opens the channel when the connection is up but the channel is not.
func (p *Publisher) ensureChannel() bool {
	p.mu.Lock()
	conn, ch, epoch, closed := p.conn, p.ch, p.epoch, p.closed
	p.mu.Unlock()

	if closed {
		return false
	}

	if ch != nil {
		return true
	}

	// A connection the manager no longer holds gets its own OnConnected or OnDisconnected shortly.
	if conn == nil || p.source.Connection() != conn {
		return false
	}

	_, err := p.opts.breaker.Execute(func() (any, error) {
		return nil, p.start(conn, epoch)
	})
	if err != nil {
		p.opts.logger.Warn().Err(err).Msg("unable to restart publisher channel, messages stay buffered")

		return false
	}

	return true
}

func (p *Publisher) start(conn Connection, epoch uint64) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()

	p.mu.Lock()
	current, ready := p.epoch == epoch && !p.closed, p.ch != nil
	p.mu.Unlock()

	if !current {
		return &ChannelError{Role: publisherRole, Op: "open", Err: ErrNotConnected, Timestamp: time.Now()}
	}

	if ready {
		return nil
	}

	ch, err := conn.Channel()
	if err != nil {
		return &ChannelError{Role: publisherRole, Op: "open", Err: err, Timestamp: time.Now()}
	}

	if err := p.configure(ch); err != nil {
		_ = ch.Close()

		return err
	}

	closeCh := ch.NotifyClose(make(chan *amqp.Error, 1))
	flowCh := ch.NotifyFlow(make(chan bool, 1))
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBufferSize))

	p.mu.Lock()

	if p.closed || p.epoch != epoch {
		p.mu.Unlock()
		_ = ch.Close()

		return &ChannelError{Role: publisherRole, Op: "open", Err: ErrNotConnected, Timestamp: time.Now()}
	}

	p.ch = ch
	p.nextTag = 0
	p.inflight = make(map[uint64]OutboundItem)
	p.paused = false
	p.mu.Unlock()

	go p.watchChannel(ch, closeCh, flowCh, confirms)

	p.opts.logger.Info().Str("exchange", p.exchange.Name).Msg("publisher channel ready")

	return nil
}

func (p *Publisher) configure(ch Channel) error {
	if err := ch.Confirm(false); err != nil {
		return &ChannelError{Role: publisherRole, Op: "confirm", Err: err, Timestamp: time.Now()}
	}

	if err := p.exchange.declare(ch); err != nil {
		return &ChannelError{
			Role:      publisherRole,
			Op:        "declare exchange",
			Err:       fmt.Errorf("exchange %q: %w", p.exchange.Name, err),
			Timestamp: time.Now(),
		}
	}

	return nil
}

func (p *Publisher) watchChannel(ch Channel, closeCh <-chan *amqp.Error, flowCh <-chan bool, confirms <-chan amqp.Confirmation) {
	for {
		select {
		case active, ok := <-flowCh:
			if !ok {
				flowCh = nil

				continue
			}

			p.setFlow(ch, active)

		case confirmation, ok := <-confirms:
			if !ok {
				confirms = nil

				continue
			}

			p.confirm(ch, confirmation)

		case amqpErr, ok := <-closeCh:
			var cause error = amqp.ErrClosed
			if ok && amqpErr != nil {
				cause = amqpErr
			}

			p.channelClosed(ch, cause)

			return
		}
	}
}

func (p *Publisher) setFlow(ch Channel, active bool) {
	p.mu.Lock()

	if p.ch != ch {
		p.mu.Unlock()

		return
	}

	resumed := p.paused && active
	p.paused = !active
	p.mu.Unlock()

	if !active {
		p.opts.logger.Warn().Msg("broker paused the publisher channel")

		return
	}

	if resumed {
		p.opts.logger.Info().Msg("broker resumed the publisher channel")
		p.requestDrain()
	}
}

func (p *Publisher) watchBlocked(epoch uint64, blockedCh <-chan amqp.Blocking) {
	for blocking := range blockedCh {
		p.mu.Lock()

		if p.epoch != epoch {
			p.mu.Unlock()

			continue
		}

		resumed := p.blocked && !blocking.Active
		p.blocked = blocking.Active
		p.mu.Unlock()

		if resumed {
			p.requestDrain()
		}
	}
}

func (p *Publisher) confirm(ch Channel, confirmation amqp.Confirmation) {
	p.mu.Lock()

	if p.ch != ch {
		p.mu.Unlock()

		return
	}

	item, ok := p.inflight[confirmation.DeliveryTag]
	delete(p.inflight, confirmation.DeliveryTag)

	if !ok || confirmation.Ack {
		p.mu.Unlock()

		return
	}

	p.opts.observer.Published(p.exchange.Name, PublishNacked)
	p.enqueueLocked(item)
	p.mu.Unlock()

	p.opts.logger.Warn().
		Str("routing_key", item.RoutingKey).
		Str("message_id", item.Options.MessageID).
		Msg("broker nacked message, re-buffered")

	p.requestDrain()
}

func (p *Publisher) channelClosed(ch Channel, cause error) {
	p.mu.Lock()

	if p.ch != ch {
		p.mu.Unlock()

		return
	}

	p.ch = nil
	unconfirmed := len(p.inflight)
	p.inflight = nil
	p.paused = false
	p.mu.Unlock()

	p.opts.logger.Warn().
		Err(&ChannelError{Role: publisherRole, Op: "closed", Err: cause, Timestamp: time.Now()}).
		Int("unconfirmed", unconfirmed).
		Msg("publisher channel closed")

	p.requestDrain()
}

func (p *Publisher) defaultBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "publisher-channel",
		Timeout: 5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			p.opts.logger.Info().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}
