package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const alivenessPath = "/api/aliveness-test/{vhost}"

var errBrokerNotAlive = errors.New("broker aliveness test failed")

var _ ports.BrokerProbe = (*BrokerProbe)(nil)

type (
	// BrokerProbe runs the management API aliveness test, which declares a queue
	// and round-trips a message through it on the configured virtual host.
	BrokerProbe struct {
		client         *resty.Client
		circuitBreaker *gobreaker.CircuitBreaker
		logger         infrastructure.Logger

		mu       sync.RWMutex
		username string
		password string
		vhost    string
	}

	alivenessResponse struct {
		Status string `json:"status"`
		Reason string `json:"reason,omitempty"`
	}
)

func NewBrokerProbe(probeConfig config.BrokerProbeConfig, queueConfig config.QueueConfig, logger infrastructure.Logger) *BrokerProbe {
	client := resty.New().
		SetBaseURL(probeConfig.BaseURL).
		SetTimeout(probeConfig.Timeout).
		SetRetryCount(probeConfig.Retries).
		SetHeader("Accept", "application/json")

	maxFailures := probeConfig.MaxFailures

	cbSettings := gobreaker.Settings{
		Name:    "broker-probe",
		Timeout: probeConfig.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	probe := &BrokerProbe{
		client:         client,
		circuitBreaker: gobreaker.NewCircuitBreaker(cbSettings),
		logger:         logger,
	}
	probe.UpdateCredentials(queueConfig)

	return probe
}

// UpdateCredentials switches the probe to credentials reloaded from the secret storage.
func (p *BrokerProbe) UpdateCredentials(queueConfig config.QueueConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.username = queueConfig.Username
	p.password = queueConfig.Password
	p.vhost = queueConfig.VirtualHost

	if p.vhost == "" {
		p.vhost = "/"
	}
}

func (p *BrokerProbe) Probe(ctx context.Context) error {
	_, err := p.circuitBreaker.Execute(func() (any, error) {
		return nil, p.aliveness(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.NewDomainError(
			"CIRCUIT_BREAKER_OPEN",
			"broker probe suspended after repeated failures",
			http.StatusServiceUnavailable,
			errors.Join(domain.ErrCircuitBreakerOpen, err),
		)
	}

	return err
}

func (p *BrokerProbe) aliveness(ctx context.Context) error {
	p.mu.RLock()
	username, password, vhost := p.username, p.password, p.vhost
	p.mu.RUnlock()

	result := &alivenessResponse{}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(username, password).
		SetPathParam("vhost", vhost).
		SetResult(result).
		Get(alivenessPath)
	if err != nil {
		return fmt.Errorf("broker probe request failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: management API answered %d", errBrokerNotAlive, resp.StatusCode())
	}

	if result.Status != "ok" {
		return fmt.Errorf("%w: status %q %s", errBrokerNotAlive, result.Status, result.Reason)
	}

	return nil
}
