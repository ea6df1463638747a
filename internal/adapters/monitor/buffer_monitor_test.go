package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/mocks"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/queries"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

func newMonitor(publisher *mocks.FakeMessagePublisher, metrics *mocks.FakeMetrics, interval time.Duration) *BufferMonitor {
	logger := infrastructure.NewTestLogger()

	connection := &mocks.FakeConnectionStatus{}
	connection.StateReturns(queue.StateReconnecting)

	svc := service.NewPublisherService(publisher, connection, config.PublisherConfig{BufferLimit: 10}, logger)
	query := queries.NewFetchBufferStatusQueryHandler(svc, logger, noop.NewTracerProvider(), nil)

	return NewBufferMonitor(query, metrics, logger, interval, 80)
}

func TestBufferMonitor_Sample(t *testing.T) {
	t.Parallel()

	publisher := &mocks.FakeMessagePublisher{}
	metrics := &mocks.FakeMetrics{}
	monitor := newMonitor(publisher, metrics, time.Second)

	publisher.BufferedReturns(9)
	require.NoError(t, monitor.sample(context.Background()))
	assert.True(t, monitor.warned)

	publisher.BufferedReturns(2)
	require.NoError(t, monitor.sample(context.Background()))
	assert.False(t, monitor.warned)

	require.Equal(t, 2, metrics.RecordBufferDepthCallCount())
	_, first := metrics.RecordBufferDepthArgsForCall(0)
	_, second := metrics.RecordBufferDepthArgsForCall(1)
	assert.Equal(t, 9, first)
	assert.Equal(t, 2, second)
}

func TestBufferMonitor_Start(t *testing.T) {
	t.Parallel()

	publisher := &mocks.FakeMessagePublisher{}
	publisher.BufferedReturns(1)

	metrics := &mocks.FakeMetrics{}
	monitor := newMonitor(publisher, metrics, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- monitor.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return metrics.RecordBufferDepthCallCount() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestNewBufferMonitor_DefaultInterval(t *testing.T) {
	t.Parallel()

	monitor := newMonitor(&mocks.FakeMessagePublisher{}, &mocks.FakeMetrics{}, 0)

	assert.Equal(t, DefaultInterval, monitor.interval)
}
