package simulation

import (
	"errors"
)

var ErrNilObserver = errors.New("nil observer supplied")

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithObserver registers a presentation adapter.
// It is only notified when Config.Visualize is set.
func WithObserver(observer Observer) Option {
	return func(e *Engine) error {
		if observer == nil {
			return ErrNilObserver
		}

		e.observers = append(e.observers, observer)

		return nil
	}
}

// WithRecorder registers an Observer that is notified regardless of Config.Visualize,
// e.g. an event journal.
func WithRecorder(recorder Observer) Option {
	return func(e *Engine) error {
		if recorder == nil {
			return ErrNilObserver
		}

		e.recorders = append(e.recorders, recorder)

		return nil
	}
}

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: per-round progress with timing (development use)
// Info level: run start and run summary (production-safe)
// Warn level: observer failures
// Error level: contract violations that abort a run.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Engine.
// It takes precedence over the Logger set with WithLogger and receives the span context of the current round.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Engine.
func WithMetrics(collector MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Engine.
// A span is started per run and per round.
func WithTracing(collector TracingCollector) Option {
	return func(e *Engine) error {
		e.tracingCollector = collector
		return nil
	}
}
