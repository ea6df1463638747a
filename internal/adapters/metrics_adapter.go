package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

type MetricsAdapter struct {
	metrics infrastructure.Metrics
}

func NewMetricsAdapter(metrics infrastructure.Metrics) decorator.MetricsClient {
	return &MetricsAdapter{
		metrics: metrics,
	}
}

// Inc receives keys shaped as "<commands|queries>.<Name>.<success|failure|duration>".
// Durations are left to the tracing decorator.
func (m *MetricsAdapter) Inc(key string, _ int) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 {
		return
	}

	switch parts[2] {
	case "success":
		m.metrics.RecordCommand(context.Background(), parts[1], true)
	case "failure":
		m.metrics.RecordCommand(context.Background(), parts[1], false)
	}
}

// QueueObserver forwards connection, publisher and worker events to the metrics backend.
type QueueObserver struct {
	metrics infrastructure.Metrics
}

var _ queue.Observer = (*QueueObserver)(nil)

func NewQueueObserver(metrics infrastructure.Metrics) *QueueObserver {
	return &QueueObserver{
		metrics: metrics,
	}
}

func (o *QueueObserver) ConnectionStateChanged(from, to queue.ConnectionState) {
	o.metrics.RecordConnectionState(context.Background(), from.String(), to.String())
}

func (o *QueueObserver) ConnectAttempted(attempt int, err error) {
	o.metrics.RecordConnectAttempt(context.Background(), attempt, err == nil)
}

func (o *QueueObserver) Published(exchange string, outcome queue.PublishOutcome) {
	o.metrics.RecordPublish(context.Background(), exchange, string(outcome))
}

func (o *QueueObserver) BufferDepthChanged(depth int) {
	o.metrics.RecordBufferDepth(context.Background(), depth)
}

func (o *QueueObserver) Delivered(queueName string, outcome queue.DeliveryOutcome, elapsed time.Duration) {
	o.metrics.RecordDelivery(context.Background(), queueName, string(outcome), elapsed)
}
