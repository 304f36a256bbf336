package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation/oteladapters"
)

// recordingLogger is an OpenTelemetry log.Logger keeping every emitted record.
type recordingLogger struct {
	embedded.Logger

	minSeverity log.Severity

	mu      sync.Mutex
	records []log.Record
	traced  []bool
}

func (l *recordingLogger) Emit(ctx context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	l.traced = append(l.traced, trace.SpanContextFromContext(ctx).IsValid())
}

func (l *recordingLogger) Enabled(_ context.Context, param log.EnabledParameters) bool {
	return param.Severity >= l.minSeverity
}

func (l *recordingLogger) attributes(i int) map[string]log.Value {
	l.mu.Lock()
	defer l.mu.Unlock()

	attrs := make(map[string]log.Value)
	l.records[i].WalkAttributes(func(kv log.KeyValue) bool {
		attrs[kv.Key] = kv.Value
		return true
	})

	return attrs
}

type recordingLoggerProvider struct {
	embedded.LoggerProvider

	logger *recordingLogger
}

func (p recordingLoggerProvider) Logger(string, ...log.LoggerOption) log.Logger {
	return p.logger
}

func Test_SlogBridgeLogger_WithHandler_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "round completed", "round", 3)
	logger.InfoContext(ctx, "simulation run completed", "avg_time", 4)
	logger.WarnContext(ctx, "observer panicked, notification dropped")
	logger.ErrorContext(ctx, "simulation run failed", "error_type", "canceled")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"round":3`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"error_type":"canceled"`)
}

func Test_SlogBridgeLogger_WithProvider_CorrelatesTheActiveSpan(t *testing.T) {
	// arrange
	recorder := &recordingLogger{minSeverity: log.SeverityDebug}
	logger := oteladapters.NewSlogBridgeLoggerWithProvider("test", recordingLoggerProvider{logger: recorder})
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	ctx, span := tracer.Start(context.Background(), "simulation.run")

	// act
	logger.InfoContext(context.Background(), "without span")
	logger.InfoContext(ctx, "with span", "round", 1)
	span.End()

	// assert
	require.Len(t, recorder.records, 2)
	assert.Equal(t, []bool{false, true}, recorder.traced)
	assert.Equal(t, "with span", recorder.records[1].Body().AsString())
}

func Test_OTelLogger_EmitsTypedAttributes(t *testing.T) {
	// arrange
	recorder := &recordingLogger{minSeverity: log.SeverityDebug}
	logger := oteladapters.NewOTelLogger(recorder)

	// act
	logger.InfoContext(context.Background(), "simulation run completed",
		"policy", "pushy",
		"people_completed", 12,
		"duration_ms", 1.5,
		"visualize", true,
		"error", errors.New("boom"),
		"dangling",
	)

	// assert
	require.Len(t, recorder.records, 1)
	record := recorder.records[0]
	assert.Equal(t, log.SeverityInfo, record.Severity())
	assert.Equal(t, "simulation run completed", record.Body().AsString())

	attrs := recorder.attributes(0)
	assert.Len(t, attrs, 5)
	assert.Equal(t, "pushy", attrs["policy"].AsString())
	assert.Equal(t, int64(12), attrs["people_completed"].AsInt64())
	assert.InDelta(t, 1.5, attrs["duration_ms"].AsFloat64(), 0.0001)
	assert.True(t, attrs["visualize"].AsBool())
	assert.Equal(t, "boom", attrs["error"].AsString())
}

func Test_OTelLogger_SkipsDisabledSeverities(t *testing.T) {
	recorder := &recordingLogger{minSeverity: log.SeverityWarn}
	logger := oteladapters.NewOTelLogger(recorder)
	ctx := context.Background()

	logger.DebugContext(ctx, "round completed")
	logger.InfoContext(ctx, "simulation run started")
	logger.WarnContext(ctx, "observer panicked, notification dropped")
	logger.ErrorContext(ctx, "simulation run failed")

	require.Len(t, recorder.records, 2)
	assert.Equal(t, log.SeverityWarn, recorder.records[0].Severity())
	assert.Equal(t, log.SeverityError, recorder.records[1].Severity())
}

func Test_OTelLogger_WithNoopLogger(t *testing.T) {
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "round completed", "round", 1, "odd")
	})
}
