//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	metricsNamespace = "amqp_relay"
)

type (
	//counterfeiter:generate -o ../mocks/metrics.go . Metrics

	Metrics interface {
		RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration, requestSize, responseSize int64)
		RecordPublish(ctx context.Context, exchange, outcome string)
		RecordBufferDepth(ctx context.Context, depth int)
		RecordConnectionState(ctx context.Context, from, to string)
		RecordConnectAttempt(ctx context.Context, attempt int, success bool)
		RecordDelivery(ctx context.Context, queue, outcome string, duration time.Duration)
		RecordCommand(ctx context.Context, name string, success bool)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	OTELMetrics struct {
		meterProvider *sdkmetric.MeterProvider
		meter         metric.Meter
		logger        Logger

		httpRequestTotal       metric.Int64Counter
		httpRequestDuration    metric.Float64Histogram
		httpRequestSize        metric.Int64Histogram
		httpResponseSize       metric.Int64Histogram
		publishTotal           metric.Int64Counter
		bufferDepth            metric.Int64Gauge
		connectionStateChanges metric.Int64Counter
		connectAttemptTotal    metric.Int64Counter
		deliveryTotal          metric.Int64Counter
		handlerDuration        metric.Float64Histogram
		commandTotal           metric.Int64Counter
	}
)

func NewMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (Metrics, error) {
	if !cfg.Telemetry.Metrics.Enabled {
		logger.Info().Msg("metrics disabled, using NoOp implementation")

		return &NoOpMetrics{}, nil
	}

	return NewOTELMetrics(ctx, cfg, logger)
}

func NewOTELMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (*OTELMetrics, error) {
	endpoint := fmt.Sprintf("%s:%s", cfg.Telemetry.OtelGRPCHost, cfg.Telemetry.OtelGRPCPort)

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTEL collector: %w", err)
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg.AppConfig)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	provider, err := newOTELMetrics(meterProvider, cfg.AppConfig.ServiceVersion, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("otel_endpoint", endpoint).
		Msg("OTEL metrics provider initialized successfully")

	return provider, nil
}

func newOTELMetrics(meterProvider *sdkmetric.MeterProvider, version string, logger Logger) (*OTELMetrics, error) {
	meter := meterProvider.Meter(
		metricsNamespace,
		metric.WithInstrumentationVersion(version),
	)

	provider := &OTELMetrics{
		meterProvider: meterProvider,
		meter:         meter,
		logger:        Logger{Logger: logger.With().Str("component", "metrics").Logger()},
	}

	if err := provider.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return provider, nil
}

func newResource(ctx context.Context, app config.AppConfig) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(app.ServiceName),
			semconv.ServiceVersionKey.String(app.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(app.CommitSHA),
			semconv.DeploymentEnvironmentKey.String(app.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}

func (om *OTELMetrics) initializeMetrics() error {
	var err error

	om.httpRequestTotal, err = om.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	om.httpRequestDuration, err = om.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	om.httpRequestSize, err = om.meter.Int64Histogram(
		"http_request_size_bytes",
		metric.WithDescription("HTTP request size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_request_size_bytes histogram: %w", err)
	}

	om.httpResponseSize, err = om.meter.Int64Histogram(
		"http_response_size_bytes",
		metric.WithDescription("HTTP response size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create http_response_size_bytes histogram: %w", err)
	}

	om.publishTotal, err = om.meter.Int64Counter(
		"publish_total",
		metric.WithDescription("Publish attempts by outcome: sent, buffered, failed, dropped or nacked"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create publish_total counter: %w", err)
	}

	om.bufferDepth, err = om.meter.Int64Gauge(
		"publisher_buffer_depth",
		metric.WithDescription("Messages waiting in the offline buffer"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create publisher_buffer_depth gauge: %w", err)
	}

	om.connectionStateChanges, err = om.meter.Int64Counter(
		"connection_state_changes_total",
		metric.WithDescription("Broker connection state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create connection_state_changes_total counter: %w", err)
	}

	om.connectAttemptTotal, err = om.meter.Int64Counter(
		"connect_attempts_total",
		metric.WithDescription("Broker dial attempts by result"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create connect_attempts_total counter: %w", err)
	}

	om.deliveryTotal, err = om.meter.Int64Counter(
		"deliveries_total",
		metric.WithDescription("Consumed deliveries by handler outcome"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create deliveries_total counter: %w", err)
	}

	om.handlerDuration, err = om.meter.Float64Histogram(
		"handler_duration_seconds",
		metric.WithDescription("Time spent in the message handler in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create handler_duration_seconds histogram: %w", err)
	}

	om.commandTotal, err = om.meter.Int64Counter(
		"commands_total",
		metric.WithDescription("Application commands and queries by result"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create commands_total counter: %w", err)
	}

	return nil
}

func (om *OTELMetrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration, requestSize, responseSize int64) {
	om.httpRequestTotal.Add(ctx, 1,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)

	om.httpRequestDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)

	om.httpRequestSize.Record(ctx, requestSize,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
		),
	)

	om.httpResponseSize.Record(ctx, responseSize,
		metric.WithAttributes(
			HTTPMethodAttr(method),
			HTTPPathAttr(path),
			HTTPStatusCodeAttr(statusCode),
		),
	)
}

func (om *OTELMetrics) RecordPublish(ctx context.Context, exchange, outcome string) {
	om.publishTotal.Add(ctx, 1,
		metric.WithAttributes(
			ExchangeAttr(exchange),
			OutcomeAttr(outcome),
		),
	)
}

func (om *OTELMetrics) RecordBufferDepth(ctx context.Context, depth int) {
	om.bufferDepth.Record(ctx, int64(depth))
}

func (om *OTELMetrics) RecordConnectionState(ctx context.Context, from, to string) {
	om.connectionStateChanges.Add(ctx, 1,
		metric.WithAttributes(
			StateFromAttr(from),
			StateToAttr(to),
		),
	)
}

func (om *OTELMetrics) RecordConnectAttempt(ctx context.Context, attempt int, success bool) {
	status := statusSuccess
	if !success {
		status = statusError

		om.logger.Debug().Int("attempt", attempt).Msg("connect attempt failed")
	}

	om.connectAttemptTotal.Add(ctx, 1,
		metric.WithAttributes(
			StatusAttr(status),
		),
	)
}

func (om *OTELMetrics) RecordDelivery(ctx context.Context, queue, outcome string, duration time.Duration) {
	om.deliveryTotal.Add(ctx, 1,
		metric.WithAttributes(
			QueueAttr(queue),
			OutcomeAttr(outcome),
		),
	)

	om.handlerDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			QueueAttr(queue),
		),
	)
}

func (om *OTELMetrics) RecordCommand(ctx context.Context, name string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	om.commandTotal.Add(ctx, 1,
		metric.WithAttributes(
			CommandAttr(name),
			StatusAttr(status),
		),
	)
}

func (om *OTELMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (om *OTELMetrics) Shutdown(ctx context.Context) error {
	if err := om.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}

	return nil
}
