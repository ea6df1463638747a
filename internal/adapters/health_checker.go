package adapters

import (
	"context"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

var _ ports.HealthChecker = (*HealthChecker)(nil)

// HealthChecker inspects the live broker clients. The publisher is optional and so is the probe.
type HealthChecker struct {
	connection  ports.ConnectionStatus
	publisher   ports.MessagePublisher
	probe       ports.BrokerProbe
	bufferLimit int
}

func NewHealthChecker(
	connection ports.ConnectionStatus,
	publisher ports.MessagePublisher,
	probe ports.BrokerProbe,
	bufferLimit int,
) *HealthChecker {
	return &HealthChecker{
		connection:  connection,
		publisher:   publisher,
		probe:       probe,
		bufferLimit: bufferLimit,
	}
}

func (h *HealthChecker) CheckConnection(_ context.Context) domain.DependencyStatus {
	state := h.connection.State()

	status := domain.DependencyCheckStatusUnhealthy

	switch state {
	case queue.StateConnected:
		status = domain.DependencyCheckStatusHealthy
	case queue.StateConnecting, queue.StateReconnecting:
		status = domain.DependencyCheckStatusDegraded
	}

	return domain.DependencyStatus{
		Status:      status,
		LastChecked: time.Now(),
		Details:     map[string]any{"state": state.String()},
	}
}

// CheckPublisher is degraded while messages wait in the buffer and unhealthy once it is full.
func (h *HealthChecker) CheckPublisher(_ context.Context) domain.DependencyStatus {
	if h.publisher == nil {
		return domain.DependencyStatus{
			Status:      domain.DependencyCheckStatusDisabled,
			LastChecked: time.Now(),
		}
	}

	buffered := h.publisher.Buffered()
	ready := h.publisher.Ready()

	status := domain.DependencyCheckStatusHealthy

	switch {
	case h.bufferLimit > 0 && buffered >= h.bufferLimit:
		status = domain.DependencyCheckStatusUnhealthy
	case buffered > 0 || !ready:
		status = domain.DependencyCheckStatusDegraded
	}

	return domain.DependencyStatus{
		Status:      status,
		LastChecked: time.Now(),
		Details: map[string]any{
			"ready":        ready,
			"buffered":     buffered,
			"buffer_limit": h.bufferLimit,
		},
	}
}

func (h *HealthChecker) CheckBroker(ctx context.Context) domain.DependencyStatus {
	if h.probe == nil {
		return domain.DependencyStatus{
			Status:      domain.DependencyCheckStatusDisabled,
			LastChecked: time.Now(),
		}
	}

	start := time.Now()
	err := h.probe.Probe(ctx)
	elapsed := float32(time.Since(start).Microseconds()) / 1000

	if err != nil {
		return domain.DependencyStatus{
			Status:       domain.DependencyCheckStatusUnhealthy,
			ResponseTime: elapsed,
			LastChecked:  time.Now(),
			Error:        err.Error(),
		}
	}

	return domain.DependencyStatus{
		Status:       domain.DependencyCheckStatusHealthy,
		ResponseTime: elapsed,
		LastChecked:  time.Now(),
	}
}
