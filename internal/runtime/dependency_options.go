package runtime

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/vault/api"
	"go.opentelemetry.io/otel"

	"github.com/architeacher/svc-amqp-relay/internal/adapters"
	"github.com/architeacher/svc-amqp-relay/internal/adapters/monitor"
	adapterqueue "github.com/architeacher/svc-amqp-relay/internal/adapters/queue"
	"github.com/architeacher/svc-amqp-relay/internal/adapters/repos"
	"github.com/architeacher/svc-amqp-relay/internal/adapters/stdin"
	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/service"
	"github.com/architeacher/svc-amqp-relay/internal/usecases"
)

type (
	DependencyOption func(*Dependencies) error
)

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithSecretStorage(),
		WithSecretStorageRepo(),
		WithConfigLoader(ctx),
		WithMetrics(ctx),
		WithTracing(ctx),
		WithBrokerConnection(),
	}
}

// WithSecretStorage initializes the Vault client using ENV config.
func WithSecretStorage() DependencyOption {
	return func(d *Dependencies) error {
		cfg := d.cfg.SecretStorage

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = cfg.Address
		vaultConfig.Timeout = cfg.Timeout

		if cfg.TLSSkipVerify {
			if err := vaultConfig.ConfigureTLS(&api.TLSConfig{Insecure: true}); err != nil {
				return fmt.Errorf("failed to configure TLS: %w", err)
			}
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("failed to create Vault client: %w", err)
		}

		if cfg.Namespace != "" {
			client.SetNamespace(cfg.Namespace)
		}

		d.Infra.SecretStorageClient = client

		return nil
	}
}

func WithSecretStorageRepo() DependencyOption {
	return func(d *Dependencies) error {
		d.Repos.SecretStorageRepo = repos.NewVaultRepository(d.Infra.SecretStorageClient)

		return nil
	}
}

func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		d.configLoader = config.NewLoader(d.cfg, d.Repos.SecretStorageRepo, d.secretVersion)

		if !d.cfg.SecretStorage.Enabled {
			d.logger.Info().Msg("secret storage is disabled, skipping vault configuration loading")

			return nil
		}

		version, err := d.configLoader.Load(ctx)
		if err != nil {
			return fmt.Errorf("unable to load service configuration: %w", err)
		}

		d.secretVersion = version

		return nil
	}
}

func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		metrics, err := infrastructure.NewMetrics(ctx, *d.cfg, d.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize metrics: %w", err)
		}

		d.Infra.Metrics = metrics

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *Dependencies) error {
		if !d.cfg.Telemetry.Traces.Enabled {
			d.tracerShutdownFunc = func(_ context.Context) error {
				return nil
			}

			return nil
		}

		tracerShutdownFunc, err := infrastructure.InitGlobalTracer(ctx, d.cfg.Telemetry, d.cfg.AppConfig)
		if err != nil {
			d.logger.Error().Err(err).Msg("failed to initialize global tracer")

			return err
		}

		d.tracerShutdownFunc = tracerShutdownFunc

		return nil
	}
}

// WithBrokerConnection builds the connection manager. It does not dial: the service
// contexts connect in the background once every listener is subscribed.
func WithBrokerConnection() DependencyOption {
	return func(d *Dependencies) error {
		d.Infra.Credentials = infrastructure.NewBrokerCredentials(d.cfg.Queue)

		connection, err := infrastructure.NewConnectionManager(
			*d.cfg,
			d.Infra.Credentials,
			d.logger,
			adapters.NewQueueObserver(d.Infra.Metrics),
		)
		if err != nil {
			return err
		}

		d.Infra.Connection = connection

		d.configLoader.OnReload(func(cfg config.ServiceConfig) {
			d.Infra.Credentials.Update(cfg.Queue)
			d.logger.Info().Msg("broker credentials rotated, used from the next connection attempt")
		})

		return nil
	}
}

func WithPublisher() DependencyOption {
	return func(d *Dependencies) error {
		if d.Infra.Publisher != nil {
			return nil
		}

		publisher, err := infrastructure.NewPublisher(
			d.Infra.Connection,
			*d.cfg,
			d.logger,
			adapters.NewQueueObserver(d.Infra.Metrics),
		)
		if err != nil {
			return err
		}

		d.Infra.Publisher = publisher

		publisherService := service.NewPublisherService(publisher, d.Infra.Connection, d.cfg.Publisher, d.logger)

		d.Apps.Publisher = usecases.NewPublisherApplication(
			publisherService,
			d.logger,
			otel.GetTracerProvider(),
			adapters.NewMetricsAdapter(d.Infra.Metrics),
		)

		d.Workers.BufferMonitor = monitor.NewBufferMonitor(
			d.Apps.Publisher.Queries.FetchBufferStatusQueryHandler,
			d.Infra.Metrics,
			d.logger,
			d.cfg.Publisher.MonitorInterval,
			d.cfg.Publisher.BufferWarnPercent,
		)

		return nil
	}
}

// WithRecordPump publishes every line read from input with the configured routing key.
func WithRecordPump(input io.Reader) DependencyOption {
	return func(d *Dependencies) error {
		if err := WithPublisher()(d); err != nil {
			return err
		}

		d.Workers.RecordPump = stdin.NewRecordPump(
			d.Apps.Publisher,
			input,
			d.cfg.Publisher.RoutingKey,
			d.cfg.Publisher.MaxPayloadBytes,
			d.logger,
		)

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *Dependencies) error {
		if err := WithPublisher()(d); err != nil {
			return err
		}

		var probe ports.BrokerProbe

		if d.cfg.BrokerProbe.Enabled {
			d.Infra.BrokerProbe = adapters.NewBrokerProbe(d.cfg.BrokerProbe, d.cfg.Queue, d.logger)
			probe = d.Infra.BrokerProbe

			d.configLoader.OnReload(func(cfg config.ServiceConfig) {
				d.Infra.BrokerProbe.UpdateCredentials(cfg.Queue)
			})
		}

		publisherService := service.NewPublisherService(d.Infra.Publisher, d.Infra.Connection, d.cfg.Publisher, d.logger)
		healthService := service.NewHealthService(adapters.NewHealthChecker(
			d.Infra.Connection,
			d.Infra.Publisher,
			probe,
			d.cfg.Publisher.BufferLimit,
		))

		d.Apps.Relay = usecases.NewRelayApplication(
			publisherService,
			healthService,
			d.logger,
			otel.GetTracerProvider(),
			adapters.NewMetricsAdapter(d.Infra.Metrics),
		)

		requestHandler := adapters.NewRequestHandler(d.Apps.Relay, d.logger, d.cfg.HTTPServer.MaxBodyBytes)

		httpServer, err := initHTTPServer(d.cfg, d.logger, d.Infra.Metrics, requestHandler)
		if err != nil {
			return err
		}

		d.Infra.HTTPServer = httpServer

		return nil
	}
}

func WithSubscriber() DependencyOption {
	return func(d *Dependencies) error {
		d.Apps.Subscriber = usecases.NewSubscriberApplication(
			service.NewSubscriberService(d.logger),
			d.logger,
			otel.GetTracerProvider(),
			adapters.NewMetricsAdapter(d.Infra.Metrics),
		)

		messageWorker := adapterqueue.NewMessageWorker(d.Apps.Subscriber, d.logger)
		d.Workers.MessageWorker = messageWorker

		worker, err := infrastructure.NewWorker(
			d.Infra.Connection,
			*d.cfg,
			messageHandler(messageWorker),
			d.logger,
			adapters.NewQueueObserver(d.Infra.Metrics),
		)
		if err != nil {
			return err
		}

		d.Infra.Worker = worker

		return nil
	}
}
