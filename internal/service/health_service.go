package service

import (
	"context"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
)

type (
	HealthService interface {
		FetchHealthReport(ctx context.Context) (*domain.HealthResult, error)
	}

	healthService struct {
		checker   ports.HealthChecker
		startTime time.Time
	}
)

func NewHealthService(checker ports.HealthChecker) HealthService {
	return &healthService{
		checker:   checker,
		startTime: time.Now(),
	}
}

func (s *healthService) FetchHealthReport(ctx context.Context) (*domain.HealthResult, error) {
	connection := s.checker.CheckConnection(ctx)
	publisher := s.checker.CheckPublisher(ctx)
	broker := s.checker.CheckBroker(ctx)

	return &domain.HealthResult{
		OverallStatus: calculateOverallHealthStatus(connection, publisher, broker),
		Connection:    connection,
		Publisher:     publisher,
		Broker:        broker,
		Uptime:        float32(time.Since(s.startTime).Seconds()),
	}, nil
}

// calculateOverallHealthStatus treats the connection as critical. A lagging publisher or a
// failing broker probe only degrades the service since messages are still buffered.
func calculateOverallHealthStatus(connection, publisher, broker domain.DependencyStatus) domain.HealthResponseStatus {
	if connection.Status.Failing() {
		return domain.HealthResponseStatusUnhealthy
	}

	if connection.Status.Impaired() || publisher.Status.Impaired() || broker.Status.Failing() {
		return domain.HealthResponseStatusDegraded
	}

	return domain.HealthResponseStatusHealthy
}
