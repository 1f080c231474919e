package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"sleepcli/pkg/contracts"
)

const (
	// ServiceName identifies the processor in traces and metrics
	ServiceName = "sleeppulse-processor"
	// MeterName is the instrumentation scope for tracers and meters
	MeterName = "sleepcli"
)

// OTelConfig holds the OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		Environment:    env,
		TraceExporter:  "stdout",
		MetricExporter: "prometheus",
		SampleRatio:    1.0,
	}
}

// InitializeOTel initializes tracing and metrics for the processor.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	providers := &OTelProviders{Logger: logger}

	if err := initializeTracing(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := initializeMetrics(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialization complete",
		slog.String("service", cfg.ServiceName),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	return providers, nil
}

// initializeTracing sets up the tracer provider
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "none":
		providers.Tracer = noopTracer()
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)
	return nil
}

// initializeMetrics sets up the meter provider
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		exporter, err := prometheus.New()
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		providers.PrometheusHTTP = promhttp.Handler()

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetMeterProvider(mp)

	case "none":
		providers.Meter = noopMeter()
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	return nil
}

// Shutdown flushes and stops all providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// TraceIDFromContext returns the active OTel trace ID, if any.
func TraceIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

func noopTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(MeterName)
}

func noopMeter() metric.Meter {
	return otel.GetMeterProvider().Meter(MeterName)
}
