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
	FetchHealthReportQuery struct{}

	FetchHealthReportQueryHandler decorator.QueryHandler[FetchHealthReportQuery, *domain.HealthResult]

	fetchHealthReportQueryHandler struct {
		healthService service.HealthService
	}
)

func NewFetchHealthReportQueryHandler(
	healthService service.HealthService,
	logger infrastructure.Logger,
	tracerProvider trace.TracerProvider,
	metricsClient decorator.MetricsClient,
) FetchHealthReportQueryHandler {
	return decorator.ApplyQueryDecorators[FetchHealthReportQuery, *domain.HealthResult](
		fetchHealthReportQueryHandler{
			healthService: healthService,
		},
		logger,
		tracerProvider,
		metricsClient,
	)
}

func (h fetchHealthReportQueryHandler) Execute(ctx context.Context, _ FetchHealthReportQuery) (*domain.HealthResult, error) {
	return h.healthService.FetchHealthReport(ctx)
}
