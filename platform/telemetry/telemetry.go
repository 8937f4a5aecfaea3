// Package telemetry configures OpenTelemetry tracing.
// This is part of the platform layer and contains no business logic.
package telemetry

import (
	"context"

	"dmt_kiosk_backend/platform/config"
	"dmt_kiosk_backend/platform/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs a global tracer provider exporting over OTLP/gRPC. Without an
// endpoint tracing stays on the no-op provider. The returned func flushes and
// shuts the provider down.
func Setup(ctx context.Context, cfg config.TelemetryConfig, log *logger.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	endpoint := cfg.GetOTLPEndpoint()
	if endpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if cfg.GetOTLPInsecure() {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		log.Warn("otel exporter unavailable, tracing disabled", "error", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.GetServiceName())))
	if err != nil {
		log.Warn("otel resource error", "error", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	log.Info("tracing enabled", "endpoint", endpoint, "service", cfg.GetServiceName())

	return provider.Shutdown
}
