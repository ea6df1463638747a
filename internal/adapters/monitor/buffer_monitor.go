package monitor

import (
	"context"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/queries"
)

const DefaultInterval = 5 * time.Second

// Ensure BufferMonitor implements the BackgroundProcessor interface
var _ ports.BackgroundProcessor = (*BufferMonitor)(nil)

// BufferMonitor samples the publisher's offline buffer into metrics and warns
// when it crosses the configured fill percentage.
type BufferMonitor struct {
	query       queries.FetchBufferStatusQueryHandler
	metrics     infrastructure.Metrics
	logger      infrastructure.Logger
	interval    time.Duration
	warnPercent int

	warned bool
}

func NewBufferMonitor(
	query queries.FetchBufferStatusQueryHandler,
	metrics infrastructure.Metrics,
	logger infrastructure.Logger,
	interval time.Duration,
	warnPercent int,
) *BufferMonitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &BufferMonitor{
		query:       query,
		metrics:     metrics,
		logger:      logger,
		interval:    interval,
		warnPercent: warnPercent,
	}
}

func (m *BufferMonitor) Start(ctx context.Context) error {
	m.logger.Info().Dur("interval", m.interval).Msg("starting buffer monitor")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("buffer monitor shutting down")

			return ctx.Err()

		case <-ticker.C:
			if err := m.sample(ctx); err != nil {
				m.logger.Error().Err(err).Msg("failed to sample publisher buffer")
			}
		}
	}
}

func (m *BufferMonitor) sample(ctx context.Context) error {
	status, err := m.query.Execute(ctx, queries.FetchBufferStatusQuery{})
	if err != nil {
		return err
	}

	m.metrics.RecordBufferDepth(ctx, status.Depth)

	fill := status.Fill()

	switch {
	case m.warnPercent > 0 && fill >= m.warnPercent && !m.warned:
		m.warned = true

		m.logger.Warn().
			Int("depth", status.Depth).
			Int("limit", status.Limit).
			Int("fill_percent", fill).
			Str("connection_state", status.ConnectionState).
			Msg("publisher buffer is filling up")

	case m.warned && fill < m.warnPercent:
		m.warned = false

		m.logger.Info().
			Int("depth", status.Depth).
			Int("fill_percent", fill).
			Msg("publisher buffer recovered")
	}

	return nil
}
