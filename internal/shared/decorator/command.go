package decorator

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"go.opentelemetry.io/otel/trace"
)

type CommandHandler[C any, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// ApplyCommandDecorators wraps handler so every call is logged, traced and counted.
func ApplyCommandDecorators[C any, R any](
	handler CommandHandler[C, R],
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient MetricsClient,
) CommandHandler[C, R] {
	return commandLoggingDecorator[C, R]{
		base: commandMetricsDecorator[C, R]{
			base: commandTracingDecorator[C, R]{
				base:   handler,
				tracer: tracerProvider.Tracer(tracerName),
			},
			client: metricsClient,
		},
		logger: logger,
	}
}
