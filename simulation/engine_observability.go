package simulation

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"
)

const (
	logMsgRunStarted       = "simulation run started"
	logMsgRunCompleted     = "simulation run completed"
	logMsgRunFailed        = "simulation run failed"
	logMsgRoundCompleted   = "round completed"
	logMsgObserverPanicked = "observer panicked, notification dropped"

	logAttrError           = "error"
	logAttrErrorType       = "error_type"
	logAttrRound           = "round"
	logAttrNumRounds       = "num_rounds"
	logAttrPolicy          = "policy"
	logAttrGenerator       = "generator"
	logAttrWaiting         = "waiting"
	logAttrCompleted       = "completed"
	logAttrTotalPeople     = "total_people"
	logAttrPeopleCompleted = "people_completed"
	logAttrAvgTime         = "avg_time"
	logAttrDurationMS      = "duration_ms"
	logAttrObserver        = "observer"
	logAttrPanic           = "panic"
)

// Metric names recorded by the Engine.
const (
	MetricRunDuration      = "simulation_run_duration_seconds"
	MetricRoundDuration    = "simulation_round_duration_seconds"
	MetricDispatchDuration = "simulation_dispatch_duration_seconds"
	MetricPeopleArrived    = "simulation_people_arrived"
	MetricPeopleWaiting    = "simulation_people_waiting"
	MetricPeopleBoarded    = "simulation_people_boarded_total"
	MetricPeopleCompleted  = "simulation_people_completed_total"
	MetricElevatorFullness = "simulation_elevator_fullness"
	MetricObserverFailures = "simulation_observer_failures_total"
	MetricErrors           = "simulation_errors_total"
)


// Span names, span attributes, and label keys used by the Engine.
const (
	SpanNameRun   = "simulation.run"
	SpanNameRound = "simulation.round"

	spanAttrNumRounds       = "num_rounds"
	spanAttrRound           = "round"
	spanAttrPolicy          = "policy"
	spanAttrErrorType       = "error_type"
	spanAttrTotalPeople     = "total_people"
	spanAttrPeopleCompleted = "people_completed"

	labelPolicy    = "policy"
	labelStatus    = "status"
	labelElevator  = "elevator"
	labelErrorType = "error_type"
)

// Status values for spans and metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error types used as labels.
const (
	errorTypeCanceled       = "canceled"
	errorTypeInvalidArrival = "invalid_arrival"
	errorTypeDispatchFailed = "dispatch_failed"
	errorTypeCountMismatch  = "direction_count_mismatch"
	errorTypeOutOfBounds    = "direction_out_of_bounds"
	errorTypeUnknown        = "unknown"
)

func errorTypeOf(err error) string {
	switch {
	case errors.Is(err, ErrRunCanceled):
		return errorTypeCanceled
	case errors.Is(err, ErrInvalidArrival):
		return errorTypeInvalidArrival
	case errors.Is(err, ErrDispatchFailed):
		return errorTypeDispatchFailed
	case errors.Is(err, ErrDirectionCountMismatch):
		return errorTypeCountMismatch
	case errors.Is(err, ErrDirectionOutOfBounds):
		return errorTypeOutOfBounds
	default:
		return errorTypeUnknown
	}
}

func (e *Engine) failRun(
	ctx context.Context,
	span SpanContext,
	err error,
	errorType string,
	round int,
	duration time.Duration,
) {
	e.recordDuration(ctx, MetricRunDuration, duration, e.runLabels(StatusError))
	e.incrementCounter(ctx, MetricErrors, map[string]string{labelErrorType: errorType, labelPolicy: e.policyName})
	e.finishSpan(span, StatusError, map[string]string{spanAttrErrorType: errorType})
	e.logError(ctx, logMsgRunFailed,
		logAttrError, err.Error(),
		logAttrErrorType, errorType,
		logAttrRound, round)
}

func (e *Engine) runLabels(status string) map[string]string {
	return map[string]string{
		labelPolicy: e.policyName,
		labelStatus: status,
	}
}

func (e *Engine) recordRoundMetrics(ctx context.Context, duration time.Duration) {
	if e.metricsCollector == nil {
		return
	}

	e.recordDuration(ctx, MetricRoundDuration, duration, map[string]string{labelPolicy: e.policyName})
	e.recordValue(ctx, MetricPeopleWaiting, float64(e.waiting.total()), nil)

	for _, elevator := range e.elevators {
		e.recordValue(ctx, MetricElevatorFullness, elevator.Fullness(),
			map[string]string{labelElevator: strconv.Itoa(elevator.id)})
	}
}

// recordDuration uses the context-aware method if the collector supports it.
func (e *Engine) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	e.metricsCollector.RecordDuration(metric, duration, labels)
}

func (e *Engine) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	e.metricsCollector.IncrementCounter(metric, labels)
}

func (e *Engine) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	e.metricsCollector.RecordValue(metric, value, labels)
}

func (e *Engine) startRunSpan(ctx context.Context, numRounds int) (context.Context, SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, SpanNameRun, map[string]string{
		spanAttrNumRounds: strconv.Itoa(numRounds),
		spanAttrPolicy:    e.policyName,
	})
}

func (e *Engine) startRoundSpan(ctx context.Context, round int) (context.Context, SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, SpanNameRound, map[string]string{
		spanAttrRound: strconv.Itoa(round),
	})
}

func (e *Engine) finishRunSpanSuccess(span SpanContext, stats Statistics) {
	e.finishSpan(span, StatusSuccess, map[string]string{
		spanAttrTotalPeople:     strconv.Itoa(stats.TotalPeople),
		spanAttrPeopleCompleted: strconv.Itoa(stats.PeopleCompleted),
	})
}

func (e *Engine) finishSpan(span SpanContext, status string, attrs map[string]string) {
	if e.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	e.tracingCollector.FinishSpan(span, status, attrs)
}

func (e *Engine) logDebug(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logWarn(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

func (e *Engine) logError(ctx context.Context, msg string, args ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if e.logger != nil {
		e.logger.Error(msg, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
