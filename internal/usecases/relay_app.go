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
	// RelayApplication backs the HTTP relay.
	RelayApplication struct {
		Commands RelayCommands
		Queries  RelayQueries
	}

	RelayCommands struct {
		PublishMessageHandler commands.PublishMessageHandler
	}

	RelayQueries struct {
		FetchHealthReportQueryHandler queries.FetchHealthReportQueryHandler
		FetchBufferStatusQueryHandler queries.FetchBufferStatusQueryHandler
	}
)

func NewRelayApplication(
	publisherService service.PublisherService,
	healthService service.HealthService,
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient decorator.MetricsClient,
) *RelayApplication {
	return &RelayApplication{
		Commands: RelayCommands{
			PublishMessageHandler: commands.NewPublishMessageHandler(publisherService, logger, tracerProvider, metricsClient),
		},
		Queries: RelayQueries{
			FetchHealthReportQueryHandler: queries.NewFetchHealthReportQueryHandler(
				healthService, logger, tracerProvider, metricsClient,
			),
			FetchBufferStatusQueryHandler: queries.NewFetchBufferStatusQueryHandler(
				publisherService, logger, tracerProvider, metricsClient,
			),
		},
	}
}
