package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/vault/api"

	"github.com/architeacher/svc-amqp-relay/internal/adapters"
	"github.com/architeacher/svc-amqp-relay/internal/adapters/middleware"
	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/usecases"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

const (
	drainPollInterval = 100 * time.Millisecond

	healthPath  = "/v1/health"
	metricsPath = "/metrics"
)

type (
	Applications struct {
		Relay      *usecases.RelayApplication
		Publisher  *usecases.PublisherApplication
		Subscriber *usecases.SubscriberApplication
	}

	ApplicationWorkers struct {
		BufferMonitor ports.BackgroundProcessor
		RecordPump    ports.BackgroundProcessor
		MessageWorker ports.MessageHandler
	}

	TracerShutdownFunc func(ctx context.Context) error

	InfrastructureDeps struct {
		HTTPServer          *http.Server
		SecretStorageClient *api.Client
		Credentials         *infrastructure.BrokerCredentials
		Connection          *queue.ConnectionManager
		Publisher           *queue.Publisher
		Worker              *queue.Worker
		BrokerProbe         *adapters.BrokerProbe
		Metrics             infrastructure.Metrics
	}

	Repos struct {
		SecretStorageRepo ports.SecretsRepository
	}

	Dependencies struct {
		Apps    Applications
		Workers ApplicationWorkers

		cfg          *config.ServiceConfig
		configLoader *config.Loader

		logger infrastructure.Logger

		Infra InfrastructureDeps
		Repos Repos

		tracerShutdownFunc TracerShutdownFunc
		secretVersion      uint
	}
)

func initializeDependencies(ctx context.Context, opts ...DependencyOption) (*Dependencies, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to load service configuration: %w", err)
	}

	appLogger := infrastructure.New(cfg.Logging)

	appLogger.Info().Msg("initializing dependencies...")

	deps := &Dependencies{
		cfg:    cfg,
		logger: appLogger,
	}

	// Start with default options and append any additional options.
	options := append(defaultOptions(ctx), opts...)

	for _, opt := range options {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	deps.logger.Info().Msg("dependencies initialized successfully")

	return deps, nil
}

// connectInBackground keeps retrying per the configured policy until ctx ends.
// Publishers buffer and workers wait in the meantime.
func (d *Dependencies) connectInBackground(ctx context.Context) {
	go func() {
		if _, err := d.Infra.Connection.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error().Err(err).Msg("unable to connect to the broker")
		}
	}()
}

func (d *Dependencies) startBackgroundProcessor(ctx context.Context, name string, processor ports.BackgroundProcessor) {
	if processor == nil {
		return
	}

	go func() {
		if err := processor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error().Err(err).Str("processor", name).Msg("background processor stopped")
		}
	}()
}

// messageHandler adapts the application's handler to the worker's callback.
func messageHandler(handler ports.MessageHandler) queue.MessageHandler {
	return handler.ProcessMessage
}

// drainPublisher waits for the offline buffer to empty, at most for the drain timeout.
func (d *Dependencies) drainPublisher(ctx context.Context) {
	publisher := d.Infra.Publisher
	if publisher == nil || publisher.Buffered() == 0 {
		return
	}

	drainCtx, cancel := context.WithTimeout(ctx, d.cfg.Publisher.DrainTimeout)
	defer cancel()

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	d.logger.Info().Int("buffered", publisher.Buffered()).Msg("draining publisher buffer")

	publisher.Drain()

	for publisher.Buffered() > 0 {
		select {
		case <-drainCtx.Done():
			d.logger.Warn().Int("buffered", publisher.Buffered()).Msg("publisher buffer not drained in time")

			return
		case <-ticker.C:
		}
	}
}

// closeMessaging tears the broker clients down in dependency order.
func (d *Dependencies) closeMessaging(ctx context.Context) {
	if d.Infra.Worker != nil {
		if err := d.Infra.Worker.Close(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to close worker")
		}
	}

	if d.Infra.Publisher != nil {
		d.drainPublisher(ctx)

		if err := d.Infra.Publisher.Close(); err != nil {
			d.logger.Error().Err(err).Msg("failed to close publisher")
		}
	}

	if d.Infra.Connection != nil {
		if err := d.Infra.Connection.Disconnect(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to disconnect from broker")
		}
	}
}

func (d *Dependencies) closeTelemetry(ctx context.Context) {
	if d.Infra.Metrics != nil {
		if err := d.Infra.Metrics.Shutdown(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to shutdown metrics")
		}
	}

	if d.tracerShutdownFunc != nil {
		if err := d.tracerShutdownFunc(ctx); err != nil {
			d.logger.Error().Err(err).Msg("failed to shutdown tracer")
		}
	}
}

func initHTTPServer(
	cfg *config.ServiceConfig,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
	reqHandler *adapters.RequestHandler,
) (*http.Server, error) {
	logger.Info().Msg("creating HTTP server...")

	middlewares, err := initMiddlewares(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middlewares...)

	router.NotFound(reqHandler.NotFound)
	router.MethodNotAllowed(reqHandler.MethodNotAllowed)

	router.Route("/v1", func(r chi.Router) {
		r.Post("/messages/{routingKey}", reqHandler.PublishMessage)
		r.Get("/health", reqHandler.GetHealth)
	})

	router.Method(http.MethodGet, metricsPath, metrics.Handler())

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, strconv.Itoa(cfg.HTTPServer.Port)),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	logger.Info().Str("addr", server.Addr).Msg("HTTP server created")

	return server, nil
}

func initMiddlewares(
	cfg *config.ServiceConfig,
	logger infrastructure.Logger,
	metrics infrastructure.Metrics,
) ([]func(http.Handler) http.Handler, error) {
	middlewares := []func(http.Handler) http.Handler{
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		chimiddleware.Timeout(cfg.HTTPServer.WriteTimeout),
		middleware.NewServiceHeaders(
			cfg.AppConfig.APIVersion,
			cfg.AppConfig.ServiceName,
			cfg.AppConfig.ServiceVersion,
		).Middleware,
	}

	if cfg.Telemetry.Traces.Enabled {
		middlewares = append(middlewares, middleware.Tracer())
	}

	if cfg.Telemetry.Metrics.Enabled {
		metricsMiddleware := middleware.NewMetricsMiddleware(metrics)
		middlewares = append(middlewares, metricsMiddleware.Middleware)
		logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Logging.AccessLog.Enabled {
		healthFilter := middleware.NewHealthCheckFilter(
			cfg.Logging.AccessLog.LogHealthChecks,
			healthPath,
			metricsPath,
		)
		accessLogger := middleware.NewAccessLogger(logger.Logger)

		middlewares = append(middlewares, healthFilter.Middleware, accessLogger.Middleware)
		logger.Info().
			Bool("log_health_checks", cfg.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	if cfg.ThrottledRateLimiting.Enabled {
		rateLimitMiddleware, err := middleware.NewThrottledRateLimitingMiddleware(cfg.ThrottledRateLimiting, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiting: %w", err)
		}

		middlewares = append(middlewares, rateLimitMiddleware.Middleware)
		logger.Info().
			Int("requests_per_second", cfg.ThrottledRateLimiting.RequestsPerSecond).
			Int("burst", cfg.ThrottledRateLimiting.BurstSize).
			Msg("rate limiting enabled")
	}

	return middlewares, nil
}
