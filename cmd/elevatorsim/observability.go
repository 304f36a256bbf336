package main

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/oteladapters"
)

const (
	serviceName           = "elevator-simulation"
	serviceVersion        = "dev"
	jaegerEndpoint        = "localhost:4319"
	otelCollectorEndpoint = "localhost:4317"
	metricExportInterval  = 5 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// observabilityProviders holds the OpenTelemetry providers that export to the local observability stack.
type observabilityProviders struct {
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
}

// newObservabilityProviders sets up OTLP exporters for traces and metrics and installs the global providers.
func newObservabilityProviders(ctx context.Context) (*observabilityProviders, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(jaegerEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	)

	metricExporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(otelCollectorEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, err
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(metricExportInterval))),
		metric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &observabilityProviders{
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
	}, nil
}

// engineOptions returns the engine options backed by the OpenTelemetry adapters.
func (p *observabilityProviders) engineOptions() []simulation.Option {
	return []simulation.Option{
		simulation.WithContextualLogger(oteladapters.NewSlogBridgeLogger(serviceName)),
		simulation.WithMetrics(p.metricsCollector()),
		simulation.WithTracing(oteladapters.NewTracingCollector(p.tracerProvider.Tracer(serviceName))),
	}
}

func (p *observabilityProviders) metricsCollector() *oteladapters.MetricsCollector {
	return oteladapters.NewMetricsCollector(p.meterProvider.Meter(serviceName))
}

// Shutdown flushes and stops both providers.
func (p *observabilityProviders) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		p.tracerProvider.Shutdown(ctx),
		p.meterProvider.Shutdown(ctx),
	)
}
