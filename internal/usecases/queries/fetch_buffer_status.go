package queries

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	"go.opentelemetry.io/otel/trace"
)

type (
	FetchBufferStatusQuery struct{}

	FetchBufferStatusQueryHandler decorator.QueryHandler[FetchBufferStatusQuery, *domain.BufferStatus]

	fetchBufferStatusQueryHandler struct {
		publisherService service.PublisherService
	}
)

func NewFetchBufferStatusQueryHandler(
	publisherService service.PublisherService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) FetchBufferStatusQueryHandler {
	return decorator.ApplyQueryDecorators[FetchBufferStatusQuery, *domain.BufferStatus](
		fetchBufferStatusQueryHandler{
			publisherService: publisherService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h fetchBufferStatusQueryHandler) Execute(ctx context.Context, _ FetchBufferStatusQuery) (*domain.BufferStatus, error) {
	return h.publisherService.FetchBufferStatus(ctx)
}
