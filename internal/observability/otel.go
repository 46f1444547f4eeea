// Package observability sets up OpenTelemetry tracing and log export over OTLP/HTTP.
// With no endpoint configured both setups are skipped and the global no-op
// providers stay in place.
package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap/zapcore"

	"github.com/cloud-wave-best-zizon/product-inventory/pkg/config"
)

const (
	ServiceName    = "product-inventory"
	ServiceVersion = "1.0.0"

	tracesPath    = "/v1/traces"
	logsPath      = "/v1/logs"
	exportTimeout = 10 * time.Second
	maxQueueSize  = 2048
)

// Shutdown flushes and stops whatever providers were installed.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

func newResource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

func headers(cfg *config.Config) map[string]string {
	if cfg.OtelAuthHeader == "" {
		return nil
	}
	return map[string]string{"Authorization": cfg.OtelAuthHeader}
}

// SetupTracing installs a batching OTLP tracer provider and the W3C propagators.
func SetupTracing(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.OtelEndpoint == "" {
		return noop, nil
	}

	res, err := newResource()
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OtelEndpoint),
		otlptracehttp.WithURLPath(tracesPath),
		otlptracehttp.WithHeaders(headers(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("OTLP trace exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExporter,
			sdktrace.WithExportTimeout(exportTimeout),
			sdktrace.WithMaxQueueSize(maxQueueSize),
		)),
	)
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider.Shutdown, nil
}

// SetupLogging installs a batching OTLP logger provider for the zap bridge.
func SetupLogging(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	if cfg.OtelEndpoint == "" {
		return noop, nil
	}

	res, err := newResource()
	if err != nil {
		return nil, err
	}

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpoint(cfg.OtelEndpoint),
		otlploghttp.WithURLPath(logsPath),
		otlploghttp.WithHeaders(headers(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("OTLP log exporter: %w", err)
	}

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter,
			sdklog.WithExportTimeout(exportTimeout),
			sdklog.WithMaxQueueSize(maxQueueSize),
		)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(loggerProvider)

	return loggerProvider.Shutdown, nil
}

// Setup runs both setups and joins their shutdowns.
func Setup(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	shutdownTracing, err := SetupTracing(ctx, cfg)
	if err != nil {
		return nil, err
	}

	shutdownLogging, err := SetupLogging(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, shutdownTracing(ctx))
	}

	return func(ctx context.Context) error {
		return errors.Join(shutdownLogging(ctx), shutdownTracing(ctx))
	}, nil
}

// ZapCore bridges zap entries into the global OpenTelemetry logger provider.
// It returns nil when no endpoint is configured.
func ZapCore(cfg *config.Config) zapcore.Core {
	if cfg.OtelEndpoint == "" {
		return nil
	}
	return otelzap.NewCore(ServiceName, otelzap.WithLoggerProvider(global.GetLoggerProvider()))
}
