//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
)

//counterfeiter:generate -o ../mocks/health_checker.go . HealthChecker
//counterfeiter:generate -o ../mocks/broker_probe.go . BrokerProbe

type (
	HealthChecker interface {
		CheckConnection(ctx context.Context) domain.DependencyStatus
		CheckPublisher(ctx context.Context) domain.DependencyStatus
		CheckBroker(ctx context.Context) domain.DependencyStatus
	}

	// BrokerProbe asks the broker itself whether it can route messages.
	BrokerProbe interface {
		Probe(ctx context.Context) error
	}
)
