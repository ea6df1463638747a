package queue

import (
	"bytes"
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// MockChannel records calls through testify and keeps the notification channels
// the code under test registers, so tests can play the broker side.
type MockChannel struct {
	mock.Mock

	notifyMu sync.Mutex
	closes   []chan *amqp.Error
	flows    []chan bool
	confirms []chan amqp.Confirmation
}

func (m *MockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockChannel) Confirm(noWait bool) error {
	args := m.Called(noWait)
	return args.Error(0)
}

func (m *MockChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	args := m.Called(prefetchCount, prefetchSize, global)
	return args.Error(0)
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	callArgs := m.Called(name, kind, durable, autoDelete, internal, noWait, args)
	return callArgs.Error(0)
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	callArgs := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return callArgs.Get(0).(amqp.Queue), callArgs.Error(1)
}

func (m *MockChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	callArgs := m.Called(name, key, exchange, noWait, args)
	return callArgs.Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	callArgs := m.Called(queue, consumer, autoAck, exclusive, noLocal, noWait, args)

	deliveries, _ := callArgs.Get(0).(chan amqp.Delivery)
	if deliveries == nil {
		return nil, callArgs.Error(1)
	}

	return deliveries, callArgs.Error(1)
}

func (m *MockChannel) Cancel(consumer string, noWait bool) error {
	args := m.Called(consumer, noWait)
	return args.Error(0)
}

func (m *MockChannel) NotifyClose(c chan *amqp.Error) chan *amqp.Error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.closes = append(m.closes, c)

	return c
}

func (m *MockChannel) NotifyFlow(c chan bool) chan bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.flows = append(m.flows, c)

	return c
}

func (m *MockChannel) NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.confirms = append(m.confirms, confirm)

	return confirm
}

// closeWith behaves like the broker closing the channel.
func (m *MockChannel) closeWith(err *amqp.Error) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	for _, c := range m.closes {
		if err != nil {
			c <- err
		}

		close(c)
	}

	m.closes = nil
}

func (m *MockChannel) flow(active bool) {
	m.notifyMu.Lock()
	flows := append([]chan bool(nil), m.flows...)
	m.notifyMu.Unlock()

	for _, c := range flows {
		c <- active
	}
}

func (m *MockChannel) confirm(tag uint64, ack bool) {
	m.notifyMu.Lock()
	confirms := append([]chan amqp.Confirmation(nil), m.confirms...)
	m.notifyMu.Unlock()

	for _, c := range confirms {
		c <- amqp.Confirmation{DeliveryTag: tag, Ack: ack}
	}
}

// MockConnection is the connection counterpart of MockChannel.
type MockConnection struct {
	mock.Mock

	notifyMu sync.Mutex
	closes   []chan *amqp.Error
	blocks   []chan amqp.Blocking
}

func (m *MockConnection) Channel() (Channel, error) {
	args := m.Called()

	ch, _ := args.Get(0).(Channel)

	return ch, args.Error(1)
}

func (m *MockConnection) NotifyClose(receiver chan *amqp.Error) chan *amqp.Error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.closes = append(m.closes, receiver)

	return receiver
}

func (m *MockConnection) NotifyBlocked(receiver chan amqp.Blocking) chan amqp.Blocking {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.blocks = append(m.blocks, receiver)

	return receiver
}

func (m *MockConnection) IsClosed() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockConnection) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockConnection) closeWith(err *amqp.Error) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	for _, c := range m.closes {
		if err != nil {
			c <- err
		}

		close(c)
	}

	m.closes = nil
}

func (m *MockConnection) block(active bool) {
	m.notifyMu.Lock()
	blocks := append([]chan amqp.Blocking(nil), m.blocks...)
	m.notifyMu.Unlock()

	for _, c := range blocks {
		c <- amqp.Blocking{Active: active, Reason: "low on memory"}
	}
}

// fakeSource stands in for a ConnectionManager in publisher and worker tests.
type fakeSource struct {
	mu        sync.Mutex
	conn      Connection
	listeners []ConnectionListener
}

func (s *fakeSource) Subscribe(listener ConnectionListener) func() {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		listener.OnConnected(conn)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, l := range s.listeners {
			if l == listener {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)

				return
			}
		}
	}
}

func (s *fakeSource) Connection() Connection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn
}

func (s *fakeSource) connect(conn Connection) {
	s.mu.Lock()
	s.conn = conn
	listeners := append([]ConnectionListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.OnConnected(conn)
	}
}

func (s *fakeSource) disconnect(err error) {
	s.mu.Lock()
	s.conn = nil
	listeners := append([]ConnectionListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.OnDisconnected(err)
	}
}

func (s *fakeSource) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.listeners)
}

// recordingListener keeps the notifications a ConnectionManager emits.
type recordingListener struct {
	name   string
	mu     sync.Mutex
	events []string
	errs   []error
	shared *[]string
}

func (l *recordingListener) OnConnected(Connection) {
	l.record("connected", nil)
}

func (l *recordingListener) OnDisconnected(err error) {
	l.record("disconnected", err)
}

func (l *recordingListener) record(event string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	l.errs = append(l.errs, err)

	if l.shared != nil {
		*l.shared = append(*l.shared, l.name+":"+event)
	}
}

func (l *recordingListener) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.events...)
}

func (l *recordingListener) Errors() []error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]error(nil), l.errs...)
}

type recordingObserver struct {
	mu         sync.Mutex
	states     []ConnectionState
	attempts   []int
	published  map[PublishOutcome]int
	depth      int
	deliveries map[DeliveryOutcome]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		published:  make(map[PublishOutcome]int),
		deliveries: make(map[DeliveryOutcome]int),
	}
}

func (o *recordingObserver) ConnectionStateChanged(_, to ConnectionState) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.states = append(o.states, to)
}

func (o *recordingObserver) ConnectAttempted(attempt int, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.attempts = append(o.attempts, attempt)
}

func (o *recordingObserver) Published(_ string, outcome PublishOutcome) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.published[outcome]++
}

func (o *recordingObserver) BufferDepthChanged(depth int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.depth = depth
}

func (o *recordingObserver) Delivered(_ string, outcome DeliveryOutcome, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.deliveries[outcome]++
}

func (o *recordingObserver) PublishedCount(outcome PublishOutcome) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.published[outcome]
}

func (o *recordingObserver) DeliveredCount(outcome DeliveryOutcome) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.deliveries[outcome]
}

func (o *recordingObserver) States() []ConnectionState {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]ConnectionState(nil), o.states...)
}

// syncBuffer collects log output written from several goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func newCaptureLogger() (*LoggerAdapter, *syncBuffer) {
	buf := &syncBuffer{}

	return NewLoggerAdapter(zerolog.New(buf).Level(zerolog.DebugLevel)), buf
}

// fakeAcker implements amqp.Acknowledger so deliveries can be settled in tests.
type fakeAcker struct {
	mu      sync.Mutex
	acks    []uint64
	nacks   []uint64
	rejects []uint64
	requeue []bool
}

func (a *fakeAcker) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.acks = append(a.acks, tag)

	return nil
}

func (a *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nacks = append(a.nacks, tag)
	a.requeue = append(a.requeue, requeue)

	return nil
}

func (a *fakeAcker) Reject(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.rejects = append(a.rejects, tag)

	return nil
}

func (a *fakeAcker) counts() (acks, nacks, rejects int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.acks), len(a.nacks), len(a.rejects)
}
