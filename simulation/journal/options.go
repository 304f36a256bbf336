package journal

import (
	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// Option configures a Store.
type Option func(*Store) error

// WithTableName sets the table the Store reads and writes.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: rendered SQL with execution timing
// Info level: event counts, durations, concurrency conflicts
// Warn level: cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger simulation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// JournalOption configures a Journal.
type JournalOption func(*Journal) error

// WithJournalLogger sets the logger the Journal reports failed appends to.
func WithJournalLogger(logger simulation.Logger) JournalOption {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithJournalMetrics sets the collector for the journal's append metrics.
func WithJournalMetrics(collector simulation.MetricsCollector) JournalOption {
	return func(j *Journal) error {
		j.metrics = collector
		return nil
	}
}
