package usecases

import (
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/shared/decorator"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/commands"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/queries"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	PublisherApplication struct {
		Commands PublisherCommands
		Queries  PublisherQueries
	}

	PublisherCommands struct {
		PublishMessageHandler commands.PublishMessageHandler
	}

	PublisherQueries struct {
		FetchBufferStatusQueryHandler queries.FetchBufferStatusQueryHandler
	}
)

func NewPublisherApplication(
	publisherService service.PublisherService,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *PublisherApplication {
	return &PublisherApplication{
		Commands: PublisherCommands{
			PublishMessageHandler: commands.NewPublishMessageHandler(
				publisherService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
		Queries: PublisherQueries{
			FetchBufferStatusQueryHandler: queries.NewFetchBufferStatusQueryHandler(
				publisherService,
				logger,
				tracerProvider,
				metricsClient,
			),
		},
	}
}
