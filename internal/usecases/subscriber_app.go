package usecases

import (
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/commands"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	SubscriberApplication struct {
		Commands SubscriberCommands
	}

	SubscriberCommands struct {
		ProcessMessageHandler commands.ProcessMessageHandler
	}
)

func NewSubscriberApplication(
	subscriberService service.SubscriberService,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *SubscriberApplication {
	return &SubscriberApplication{
		Commands: SubscriberCommands{
			ProcessMessageHandler: commands.NewProcessMessageHandler(
				subscriberService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
	}
}
