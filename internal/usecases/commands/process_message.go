package commands

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	"go.opentelemetry.io/otel/trace"
)

type (
	ProcessMessageCommand struct {
		Message domain.InboundMessage
	}

	ProcessMessageHandler decorator.CommandHandler[ProcessMessageCommand, *domain.ProcessMessageResult]

	processMessageHandler struct {
		subscriberService service.SubscriberService
	}
)

func NewProcessMessageHandler(
	subscriberService service.SubscriberService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) ProcessMessageHandler {
	return decorator.ApplyCommandDecorators[ProcessMessageCommand, *domain.ProcessMessageResult](
		processMessageHandler{
			subscriberService: subscriberService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h processMessageHandler) Handle(
	ctx context.Context,
	cmd ProcessMessageCommand,
) (*domain.ProcessMessageResult, error) {
	return h.subscriberService.ProcessMessage(ctx, cmd.Message)
}
