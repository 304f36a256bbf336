// Package oteladapters implements the simulation observability interfaces with OpenTelemetry.
//
//   - MetricsCollector creates histograms, counters and gauges on demand from a metric.Meter.
//   - TracingCollector starts and finishes spans with a trace.Tracer.
//   - SlogBridgeLogger logs through the otelslog bridge, so records carry the active trace.
//   - OTelLogger emits records through the OpenTelemetry log API directly.
//
// Wiring:
//
//	engine, err := simulation.NewEngine(config,
//		simulation.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("elevatorsim"))),
//		simulation.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("elevatorsim"))),
//		simulation.WithContextualLogger(oteladapters.NewSlogBridgeLogger("elevatorsim")),
//	)
package oteladapters
