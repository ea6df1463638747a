package commands

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	PublishMessageCommand struct {
		Message domain.OutboundMessage
	}

	PublishMessageHandler decorator.CommandHandler[PublishMessageCommand, *domain.PublishResult]

	publishMessageHandler struct {
		publisherService service.PublisherService
	}
)

func NewPublishMessageHandler(
	publisherService service.PublisherService,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) PublishMessageHandler {
	return decorator.ApplyCommandDecorators[PublishMessageCommand, *domain.PublishResult](
		publishMessageHandler{
			publisherService: publisherService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h publishMessageHandler) Handle(ctx context.Context, cmd PublishMessageCommand) (*domain.PublishResult, error) {
	return h.publisherService.PublishMessage(ctx, cmd.Message)
}
