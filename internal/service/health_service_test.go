package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/mocks"
)

func TestHealthService_FetchHealthReport(t *testing.T) {
	t.Parallel()

	status := func(s domain.DependencyCheckStatus) domain.DependencyStatus {
		return domain.DependencyStatus{Status: s}
	}

	healthy := status(domain.DependencyCheckStatusHealthy)
	degraded := status(domain.DependencyCheckStatusDegraded)
	unhealthy := status(domain.DependencyCheckStatusUnhealthy)
	disabled := status(domain.DependencyCheckStatusDisabled)

	testCases := []struct {
		name       string
		connection domain.DependencyStatus
		publisher  domain.DependencyStatus
		broker     domain.DependencyStatus
		expected   domain.HealthResponseStatus
	}{
		{name: "all healthy", connection: healthy, publisher: healthy, broker: healthy, expected: domain.HealthResponseStatusHealthy},
		{name: "probe disabled", connection: healthy, publisher: healthy, broker: disabled, expected: domain.HealthResponseStatusHealthy},
		{name: "connection down", connection: unhealthy, publisher: degraded, broker: healthy, expected: domain.HealthResponseStatusUnhealthy},
		{name: "reconnecting", connection: degraded, publisher: healthy, broker: healthy, expected: domain.HealthResponseStatusDegraded},
		{name: "publisher buffering", connection: healthy, publisher: degraded, broker: healthy, expected: domain.HealthResponseStatusDegraded},
		{name: "broker probe failing", connection: healthy, publisher: healthy, broker: unhealthy, expected: domain.HealthResponseStatusDegraded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			checker := &mocks.FakeHealthChecker{}
			checker.CheckConnectionReturns(tc.connection)
			checker.CheckPublisherReturns(tc.publisher)
			checker.CheckBrokerReturns(tc.broker)

			report, err := NewHealthService(checker).FetchHealthReport(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, report.OverallStatus)
			assert.Equal(t, tc.connection, report.Connection)
			assert.Equal(t, tc.publisher, report.Publisher)
			assert.Equal(t, tc.broker, report.Broker)
			assert.GreaterOrEqual(t, report.Uptime, float32(0))
		})
	}
}
