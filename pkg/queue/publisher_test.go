package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var eventsExchange = ExchangeSpec{Name: "events", Kind: ExchangeTopic, Durable: true}

type sentMessages struct {
	mu   sync.Mutex
	keys []string
	msgs []amqp.Publishing
}

func (s *sentMessages) record(args mock.Arguments) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = append(s.keys, args.String(2))
	s.msgs = append(s.msgs, args.Get(5).(amqp.Publishing))
}

func (s *sentMessages) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.keys...)
}

func (s *sentMessages) Messages() []amqp.Publishing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]amqp.Publishing(nil), s.msgs...)
}

func newPublisherChannel(exchange ExchangeSpec) *MockChannel {
	ch := &MockChannel{}
	ch.On("Confirm", false).Return(nil)
	ch.On("Close").Return(nil).Maybe()

	if !exchange.IsDefault() {
		ch.On("ExchangeDeclare", exchange.Name, exchange.Kind, exchange.Durable, false, false, false, amqp.Table(nil)).Return(nil)
	}

	return ch
}

func expectSends(ch *MockChannel, exchange string, sent *sentMessages) *mock.Call {
	return ch.On("PublishWithContext", mock.Anything, exchange, mock.Anything, false, false, mock.Anything).
		Run(sent.record).
		Return(nil)
}

func connWithChannels(channels ...Channel) *MockConnection {
	conn := &MockConnection{}
	for _, ch := range channels {
		conn.On("Channel").Return(ch, nil).Once()
	}

	return conn
}

func TestNewPublisher_Configuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   ConnectionSource
		exchange ExchangeSpec
		wantErr  bool
	}{
		{
			name:     "named exchange without kind",
			source:   &fakeSource{},
			exchange: ExchangeSpec{Name: "events"},
			wantErr:  true,
		},
		{
			name:     "missing connection source",
			exchange: eventsExchange,
			wantErr:  true,
		},
		{
			name:     "default exchange needs no kind",
			source:   &fakeSource{},
			exchange: ExchangeSpec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			publisher, err := NewPublisher(tt.source, tt.exchange)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfiguration)
				assert.Nil(t, publisher)

				return
			}

			require.NoError(t, err)
			assert.NoError(t, publisher.Close())
		})
	}
}

func TestPublisher_DefaultExchangeSkipsDeclaration(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(ExchangeSpec{})
	expectSends(ch, "", sent)

	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, ExchangeSpec{})
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.True(t, publisher.Ready())
	assert.True(t, publisher.Publish(context.Background(), "jobs", []byte("payload")))
	assert.Equal(t, []string{"jobs"}, sent.Keys())

	ch.AssertNotCalled(t, "ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ch.AssertCalled(t, "Confirm", false)
}

func TestPublisher_BuffersWhileDisconnectedAndDrainsInOrder(t *testing.T) {
	t.Parallel()

	observer := newRecordingObserver()
	source := &fakeSource{}

	publisher, err := NewPublisher(source, eventsExchange, WithPublisherObserver(observer))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	for _, key := range []string{"k1", "k2", "k3"} {
		assert.False(t, publisher.Publish(context.Background(), key, []byte(key)))
	}

	assert.Equal(t, 3, publisher.Buffered())
	assert.Equal(t, 3, observer.PublishedCount(PublishBuffered))

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	source.connect(connWithChannels(ch))

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)

	assert.Equal(t, []string{"k1", "k2", "k3"}, sent.Keys())
	ch.AssertNumberOfCalls(t, "PublishWithContext", 3)
	assert.Equal(t, 3, observer.PublishedCount(PublishSent))

	publisher.drain()
	ch.AssertNumberOfCalls(t, "PublishWithContext", 3)
}

func TestPublisher_ChannelFollowsConnectionEvents(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Ready(), "no connection yet")

	source.connect(connWithChannels(newPublisherChannel(eventsExchange)))
	assert.True(t, publisher.Ready(), "start completed after connected")

	source.disconnect(errors.New("connection reset"))
	assert.False(t, publisher.Ready(), "dropped as soon as disconnected arrives")

	broken := &MockConnection{}
	broken.On("Channel").Return(nil, errors.New("channel max reached"))

	source.connect(broken)
	assert.False(t, publisher.Ready(), "start failed")

	source.connect(connWithChannels(newPublisherChannel(eventsExchange)))
	assert.True(t, publisher.Ready())
}

func TestPublisher_FailedSendIsBufferedAndReplayed(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	ch.On("PublishWithContext", mock.Anything, "events", "first", false, false, mock.Anything).
		Return(errors.New("frame too large")).Once()
	expectSends(ch, "events", sent)

	logger, logs := newCaptureLogger()
	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, eventsExchange, WithPublisherLogger(logger))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Publish(context.Background(), "first", []byte("1")))
	assert.Equal(t, 1, publisher.Buffered())
	assert.Contains(t, logs.String(), "publish failed, message buffered")

	assert.False(t, publisher.Publish(context.Background(), "second", []byte("2")), "older messages go first")

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)
	assert.Equal(t, []string{"first", "second"}, sent.Keys())
}

func TestPublisher_FlowControlPausesSending(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	ch.flow(false)
	require.Eventually(t, func() bool { return !publisher.Ready() }, waitFor, pollInterval)

	assert.False(t, publisher.Publish(context.Background(), "a", []byte("a")))
	assert.False(t, publisher.Publish(context.Background(), "b", []byte("b")))

	assert.Never(t, func() bool { return len(sent.Keys()) > 0 }, 50*time.Millisecond, pollInterval)

	ch.flow(true)

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)
	assert.Equal(t, []string{"a", "b"}, sent.Keys())
}

func TestPublisher_BlockedConnectionPausesSending(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	conn := connWithChannels(ch)
	source := &fakeSource{conn: conn}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	conn.block(true)
	require.Eventually(t, func() bool { return !publisher.Ready() }, waitFor, pollInterval)

	assert.False(t, publisher.Publish(context.Background(), "a", []byte("a")))
	assert.Empty(t, sent.Keys())

	conn.block(false)

	require.Eventually(t, func() bool { return len(sent.Keys()) == 1 }, waitFor, pollInterval)
	assert.True(t, publisher.Ready())
}

func TestPublisher_NackedMessageIsRepublished(t *testing.T) {
	t.Parallel()

	observer := newRecordingObserver()
	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, eventsExchange, WithPublisherObserver(observer))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	require.True(t, publisher.Publish(context.Background(), "orders", []byte("o-1")))
	require.True(t, publisher.Publish(context.Background(), "orders", []byte("o-2")))

	ch.confirm(1, true)
	ch.confirm(2, false)

	require.Eventually(t, func() bool { return len(sent.Messages()) == 3 }, waitFor, pollInterval)

	msgs := sent.Messages()
	assert.Equal(t, msgs[1].MessageId, msgs[2].MessageId, "the nacked message goes out again")
	assert.Equal(t, []byte("o-2"), msgs[2].Body)
	assert.Equal(t, 1, observer.PublishedCount(PublishNacked))
}

func TestPublisher_BufferLimitDropsNewest(t *testing.T) {
	t.Parallel()

	observer := newRecordingObserver()

	publisher, err := NewPublisher(&fakeSource{}, eventsExchange, WithBufferLimit(2), WithPublisherObserver(observer))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	for _, key := range []string{"a", "b", "c"} {
		assert.False(t, publisher.Publish(context.Background(), key, nil))
	}

	assert.Equal(t, 2, publisher.Buffered())
	assert.Equal(t, 1, observer.PublishedCount(PublishDropped))

	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	assert.Equal(t, "a", publisher.buffer[0].RoutingKey)
	assert.Equal(t, "b", publisher.buffer[1].RoutingKey)
}

func TestPublisher_RestartsChannelWhileConnectionIsUp(t *testing.T) {
	t.Parallel()

	first := newPublisherChannel(eventsExchange)
	second := newPublisherChannel(eventsExchange)

	sent := &sentMessages{}
	expectSends(second, "events", sent)

	source := &fakeSource{conn: connWithChannels(first, second)}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	first.closeWith(&amqp.Error{Code: amqp.PreconditionFailed, Reason: "inequivalent arg"})

	require.Eventually(t, func() bool {
		publisher.mu.Lock()
		defer publisher.mu.Unlock()

		return publisher.ch == second
	}, waitFor, pollInterval)

	assert.True(t, publisher.Publish(context.Background(), "after", []byte("x")))
	assert.Equal(t, []string{"after"}, sent.Keys())
}

func TestPublisher_RetriesFailedStartAfterConnected(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Publish(context.Background(), "k1", []byte("1")))
	assert.False(t, publisher.Publish(context.Background(), "k2", []byte("2")))

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	conn := &MockConnection{}
	conn.On("Channel").Return(nil, errors.New("resource locked")).Once()
	conn.On("Channel").Return(ch, nil).Once()

	source.connect(conn)

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)
	assert.Equal(t, []string{"k1", "k2"}, sent.Keys())
	assert.True(t, publisher.Ready())
	conn.AssertNumberOfCalls(t, "Channel", 2)
}

func TestPublisher_KeepsRetryingStartWithBackoff(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	conn := &MockConnection{}
	conn.On("Channel").Return(nil, errors.New("channel max reached")).Times(3)
	conn.On("Channel").Return(ch, nil).Once()

	source := &fakeSource{}

	publisher, err := NewPublisher(source, eventsExchange, WithRestartBackoff(5*time.Millisecond, 20*time.Millisecond))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Publish(context.Background(), "pending", []byte("p")))

	source.connect(conn)

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)
	assert.Equal(t, []string{"pending"}, sent.Keys())
	conn.AssertNumberOfCalls(t, "Channel", 4)
}

func TestPublisher_StopsRetryingWhenDisconnected(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	conn := &MockConnection{}
	conn.On("Channel").
		Run(func(mock.Arguments) { attempts.Add(1) }).
		Return(nil, errors.New("channel max reached"))

	source := &fakeSource{}

	publisher, err := NewPublisher(source, eventsExchange, WithRestartBackoff(5*time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Publish(context.Background(), "pending", []byte("p")))

	source.connect(conn)
	require.Eventually(t, func() bool { return attempts.Load() >= 2 }, waitFor, pollInterval)

	source.disconnect(errors.New("connection reset"))

	// Let an already scheduled attempt run out.
	time.Sleep(20 * time.Millisecond)

	calls := attempts.Load()

	assert.Never(t, func() bool { return attempts.Load() > calls }, 50*time.Millisecond, pollInterval)
	assert.Equal(t, 1, publisher.Buffered())
}

func TestPublisher_DrainReplaysBuffer(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	ch.On("PublishWithContext", mock.Anything, "events", "late", false, false, mock.Anything).
		Return(errors.New("frame too large")).Once()
	expectSends(ch, "events", sent)

	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	assert.False(t, publisher.Publish(context.Background(), "late", []byte("l")))

	publisher.Drain()

	require.Eventually(t, func() bool { return publisher.Buffered() == 0 }, waitFor, pollInterval)
	assert.Equal(t, []string{"late"}, sent.Keys())
}

func TestPublisher_MessageProperties(t *testing.T) {
	t.Parallel()

	sent := &sentMessages{}
	ch := newPublisherChannel(eventsExchange)
	expectSends(ch, "events", sent)

	publisher, err := NewPublisher(&fakeSource{conn: connWithChannels(ch)}, eventsExchange)
	require.NoError(t, err)

	t.Cleanup(func() { _ = publisher.Close() })

	require.True(t, publisher.Publish(context.Background(), "a", []byte("{}"),
		WithContentType(ContentTypeJSON),
		WithCorrelationID("corr-1"),
		WithExpiration(1500*time.Millisecond),
		WithHeader("tenant", "acme"),
	))
	require.True(t, publisher.Publish(context.Background(), "b", []byte("raw"), WithTransient(), WithMessageID("fixed")))

	msgs := sent.Messages()
	require.Len(t, msgs, 2)

	assert.NotEmpty(t, msgs[0].MessageId)
	assert.Equal(t, ContentTypeJSON, msgs[0].ContentType)
	assert.Equal(t, "corr-1", msgs[0].CorrelationId)
	assert.Equal(t, "1500", msgs[0].Expiration)
	assert.Equal(t, "acme", msgs[0].Headers["tenant"])
	assert.Equal(t, amqp.Persistent, msgs[0].DeliveryMode)
	assert.False(t, msgs[0].Timestamp.IsZero())

	assert.Equal(t, "fixed", msgs[1].MessageId)
	assert.Equal(t, ContentTypeOctetStream, msgs[1].ContentType)
	assert.Equal(t, amqp.Transient, msgs[1].DeliveryMode)
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	ch := &MockChannel{}
	ch.On("Confirm", false).Return(nil)
	ch.On("ExchangeDeclare", "events", "topic", true, false, false, false, amqp.Table(nil)).Return(nil)
	ch.On("Close").Return(nil).Once()

	source := &fakeSource{conn: connWithChannels(ch)}

	publisher, err := NewPublisher(source, eventsExchange)
	require.NoError(t, err)
	require.Equal(t, 1, source.subscribers())

	require.NoError(t, publisher.Close())
	require.NoError(t, publisher.Close())

	assert.Zero(t, source.subscribers())
	assert.False(t, publisher.Ready())
	assert.False(t, publisher.Publish(context.Background(), "late", []byte("x")))
	ch.AssertExpectations(t)
}
