package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation/oteladapters"
)

func givenMetricsCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics), "failed to collect metrics")

	return resourceMetrics
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	collector, reader := givenMetricsCollector()

	// act
	collector.RecordDuration("simulation_round_duration_seconds", 150*time.Millisecond, map[string]string{"policy": "pushy"})

	// assert
	resourceMetrics := collect(t, reader)
	histogram := findHistogramMetric(t, resourceMetrics, "simulation_round_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.15, dataPoint.Sum, 0.001)

	expectedAttrs := attribute.NewSet(attribute.String("policy", "pushy"))
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
	assert.Equal(t, "s", findMetric(t, resourceMetrics, "simulation_round_duration_seconds").Unit)
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	collector, reader := givenMetricsCollector()
	labels := map[string]string{"error_type": "dispatch_failed", "policy": "random"}

	// act
	collector.IncrementCounter("simulation_errors_total", labels)
	collector.IncrementCounterContext(context.Background(), "simulation_errors_total", labels)
	collector.IncrementCounter("simulation_errors_total", nil)

	// assert
	counter := findCounterMetric(t, collect(t, reader), "simulation_errors_total")
	require.Len(t, counter.DataPoints, 2, "one data point per label set")

	total := int64(0)
	for _, dataPoint := range counter.DataPoints {
		total += dataPoint.Value
	}

	assert.Equal(t, int64(3), total)
	assert.True(t, counter.IsMonotonic)
}

func Test_MetricsCollector_RecordValue_KeepsTheLastValue(t *testing.T) {
	// arrange
	collector, reader := givenMetricsCollector()
	labels := map[string]string{"elevator": "0"}

	// act
	collector.RecordValue("simulation_elevator_fullness", 0.25, labels)
	collector.RecordValueContext(context.Background(), "simulation_elevator_fullness", 0.75, labels)

	// assert
	gauge := findGaugeMetric(t, collect(t, reader), "simulation_elevator_fullness")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 0.75, gauge.DataPoints[0].Value, 0.0001)
}

func findMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	return histogram
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()

	counter, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	return counter
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, resourceMetrics, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %s is not a float64 gauge", name)

	return gauge
}
