package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/mocks"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

type offlineSource struct{}

func (offlineSource) Subscribe(queue.ConnectionListener) func() { return func() {} }

func (offlineSource) Connection() queue.Connection { return nil }

func newTestDependencies(cfg *config.ServiceConfig) *Dependencies {
	return &Dependencies{
		cfg:    cfg,
		logger: infrastructure.NewTestLogger(),
	}
}

func TestDependencies_StartBackgroundProcessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "runs until done", err: nil},
		{name: "logs a failure", err: errors.New("input closed")},
		{name: "ignores cancellation", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			processor := &mocks.FakeBackgroundProcessor{}
			processor.StartReturns(tt.err)

			newTestDependencies(testServiceConfig()).startBackgroundProcessor(ctx, "buffer_monitor", processor)

			require.Eventually(t, func() bool {
				return processor.StartCallCount() == 1
			}, 2*time.Second, 5*time.Millisecond)
			assert.Equal(t, ctx, processor.StartArgsForCall(0))
		})
	}

	t.Run("nil processor is skipped", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			newTestDependencies(testServiceConfig()).startBackgroundProcessor(context.Background(), "record_pump", nil)
		})
	})
}

func TestMessageHandler(t *testing.T) {
	t.Parallel()

	handlerErr := errors.New("rejected")

	handler := &mocks.FakeMessageHandler{}
	handler.ProcessMessageReturns(handlerErr)

	msg := queue.Message{Body: []byte("hello"), RoutingKey: "relay.message"}
	err := messageHandler(handler)(context.Background(), msg, nil)

	require.ErrorIs(t, err, handlerErr)
	require.Equal(t, 1, handler.ProcessMessageCallCount())

	_, received, ctrl := handler.ProcessMessageArgsForCall(0)
	assert.Equal(t, []byte("hello"), received.Body)
	assert.Equal(t, "relay.message", received.RoutingKey)
	assert.Nil(t, ctrl)
}

func TestDependencies_DrainPublisher(t *testing.T) {
	t.Parallel()

	t.Run("returns at once with an empty buffer", func(t *testing.T) {
		t.Parallel()

		publisher, err := queue.NewPublisher(offlineSource{}, queue.ExchangeSpec{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = publisher.Close() })

		cfg := testServiceConfig()
		cfg.Publisher.DrainTimeout = time.Minute

		deps := newTestDependencies(cfg)
		deps.Infra.Publisher = publisher

		start := time.Now()
		deps.drainPublisher(context.Background())

		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("gives up after the drain timeout while offline", func(t *testing.T) {
		t.Parallel()

		publisher, err := queue.NewPublisher(offlineSource{}, queue.ExchangeSpec{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = publisher.Close() })

		assert.False(t, publisher.Publish(context.Background(), "relay.message", []byte("pending")))
		require.Equal(t, 1, publisher.Buffered())

		cfg := testServiceConfig()
		cfg.Publisher.DrainTimeout = 50 * time.Millisecond

		deps := newTestDependencies(cfg)
		deps.Infra.Publisher = publisher

		start := time.Now()
		deps.drainPublisher(context.Background())

		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Equal(t, 1, publisher.Buffered())
	})
}
