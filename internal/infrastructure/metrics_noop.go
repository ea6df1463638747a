package infrastructure

import (
	"context"
	"net/http"
	"time"
)

type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordHTTPRequest(_ context.Context, _, _ string, _ int, _ time.Duration, _, _ int64) {
}

func (n *NoOpMetrics) RecordPublish(_ context.Context, _, _ string) {
}

func (n *NoOpMetrics) RecordBufferDepth(_ context.Context, _ int) {
}

func (n *NoOpMetrics) RecordConnectionState(_ context.Context, _, _ string) {
}

func (n *NoOpMetrics) RecordConnectAttempt(_ context.Context, _ int, _ bool) {
}

func (n *NoOpMetrics) RecordDelivery(_ context.Context, _, _ string, _ time.Duration) {
}

func (n *NoOpMetrics) RecordCommand(_ context.Context, _ string, _ bool) {
}

func (n *NoOpMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (n *NoOpMetrics) Shutdown(_ context.Context) error {
	return nil
}
