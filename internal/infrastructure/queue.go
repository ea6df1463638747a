package infrastructure

import (
	"fmt"
	"sync/atomic"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
)

// BrokerCredentials holds the current broker URL. Secrets reloaded from Vault
// replace it and take effect on the next dial.
type BrokerCredentials struct {
	url atomic.Pointer[string]
}

func NewBrokerCredentials(cfg config.QueueConfig) *BrokerCredentials {
	creds := &BrokerCredentials{}
	creds.Update(cfg)

	return creds
}

func (c *BrokerCredentials) Update(cfg config.QueueConfig) {
	url := BrokerURL(cfg)
	c.url.Store(&url)
}

func (c *BrokerCredentials) URL() string {
	return *c.url.Load()
}

// Dialer ignores the URL the manager was built with and dials the current one.
func (c *BrokerCredentials) Dialer() queue.Dialer {
	return func(_ string, amqpConfig amqp.Config) (queue.Connection, error) {
		return queue.DialAMQP(c.URL(), amqpConfig)
	}
}

// BrokerURL prefers the explicit URL and otherwise assembles one from the parts.
func BrokerURL(cfg config.QueueConfig) string {
	return queue.BuildURL(queue.Config{
		URL:      cfg.URL,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    cfg.VirtualHost,
	})
}

func RetryPolicy(cfg config.RetryConfig) queue.RetryPolicy {
	return queue.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.BaseDelay,
		MaxDelay:    cfg.MaxDelay,
		Jitter:      cfg.Jitter,
	}
}

func PublisherExchange(cfg config.PublisherConfig) queue.ExchangeSpec {
	return queue.ExchangeSpec{
		Name:       cfg.ExchangeName,
		Kind:       cfg.ExchangeKind,
		Durable:    cfg.ExchangeDurable,
		AutoDelete: cfg.ExchangeAutoDelete,
	}
}

func WorkerSettings(cfg config.WorkerConfig) queue.WorkerConfig {
	settings := queue.WorkerConfig{
		Queue: queue.QueueSpec{
			Name:       cfg.Queue,
			Durable:    cfg.Durable,
			AutoDelete: cfg.AutoDelete,
			Exclusive:  cfg.Exclusive,
		},
		BindingKey:    cfg.BindingKey,
		PrefetchCount: cfg.PrefetchCount,
		ConsumerTag:   cfg.ConsumerTag,
	}

	if cfg.ExchangeName != "" {
		settings.Exchange = &queue.ExchangeSpec{
			Name:       cfg.ExchangeName,
			Kind:       cfg.ExchangeKind,
			Durable:    cfg.ExchangeDurable,
			AutoDelete: cfg.ExchangeAutoDelete,
		}
	}

	return settings
}

// NewChannelBreaker guards the publisher against re-opening channels in a tight loop.
func NewChannelBreaker(cfg config.CircuitBreakerConfig, logger Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "publisher-channel",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

func componentLogger(logger Logger, component string) queue.Logger {
	return queue.NewLoggerAdapter(logger.With().Str("subsystem", component).Logger())
}

func NewConnectionManager(cfg config.ServiceConfig, creds *BrokerCredentials, logger Logger, observer queue.Observer) (*queue.ConnectionManager, error) {
	name := cfg.Queue.ConnectionName
	if name == "" {
		name = cfg.AppConfig.ServiceName
	}

	manager, err := queue.NewConnectionManager(
		queue.Config{URL: creds.URL(), ConnectionName: name},
		queue.WithLogger(componentLogger(logger, "connection")),
		queue.WithObserver(observer),
		queue.WithRetryPolicy(RetryPolicy(cfg.Retry)),
		queue.WithConnectionTimeout(cfg.Queue.ConnectTimeout),
		queue.WithHeartbeat(cfg.Queue.Heartbeat),
		queue.WithDialer(creds.Dialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}

	return manager, nil
}

func NewPublisher(source queue.ConnectionSource, cfg config.ServiceConfig, logger Logger, observer queue.Observer) (*queue.Publisher, error) {
	publisher, err := queue.NewPublisher(
		source,
		PublisherExchange(cfg.Publisher),
		queue.WithPublisherLogger(componentLogger(logger, "publisher")),
		queue.WithPublisherObserver(observer),
		queue.WithPublisherTracerProvider(otel.GetTracerProvider()),
		queue.WithBufferLimit(cfg.Publisher.BufferLimit),
		queue.WithPublishingTimeout(cfg.Publisher.PublishTimeout),
		queue.WithChannelBreaker(NewChannelBreaker(cfg.CircuitBreaker, logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	return publisher, nil
}

func NewWorker(source queue.ConnectionSource, cfg config.ServiceConfig, handler queue.MessageHandler, logger Logger, observer queue.Observer) (*queue.Worker, error) {
	worker, err := queue.NewWorker(
		source,
		WorkerSettings(cfg.Worker),
		handler,
		queue.WithWorkerLogger(componentLogger(logger, "worker")),
		queue.WithWorkerObserver(observer),
		queue.WithWorkerTracerProvider(otel.GetTracerProvider()),
		queue.WithMaxRequeues(cfg.Worker.MaxRequeues),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return worker, nil
}
