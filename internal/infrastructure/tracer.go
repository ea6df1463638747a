package infrastructure

import (
	"context"
	"fmt"
	"os"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitGlobalTracer installs a batching tracer provider and the W3C propagators.
// The returned func flushes and stops the provider.
func InitGlobalTracer(ctx context.Context, telemetry config.Telemetry, app config.AppConfig) (func(ctx context.Context) error, error) {
	exporter, err := newSpanExporter(ctx, telemetry)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, app)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(telemetry.Traces.SamplerRatio))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

func newSpanExporter(ctx context.Context, telemetry config.Telemetry) (sdktrace.SpanExporter, error) {
	switch telemetry.ExporterType {
	case config.ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}

		return exporter, nil

	case config.ExporterGRPC, "":
		client := otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(fmt.Sprintf("%s:%s", telemetry.OtelGRPCHost, telemetry.OtelGRPCPort)),
			otlptracegrpc.WithInsecure(),
		)

		exporter, err := otlptrace.New(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}

		return exporter, nil

	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", telemetry.ExporterType)
	}
}
