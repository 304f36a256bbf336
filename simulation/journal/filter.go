package journal

import (
	"slices"

	"github.com/google/uuid"
)

// Filter selects journal events. All set criteria must match; an empty Filter matches everything.
type Filter struct {
	runID      uuid.UUID
	eventTypes []string
	fromRound  int
	hasRound   bool
}

func (f Filter) RunID() uuid.UUID {
	return f.runID
}

// EventTypes returns the sorted event types of which any must match.
func (f Filter) EventTypes() []string {
	return f.eventTypes
}

// FromRound returns the first round to match, if one was set.
func (f Filter) FromRound() (int, bool) {
	return f.fromRound, f.hasRound
}

// FilterBuilder builds a Filter step by step. Every step returns a new builder.
type FilterBuilder struct {
	filter Filter
}

func BuildFilter() FilterBuilder {
	return FilterBuilder{}
}

// ForRun restricts the Filter to the events of one run.
func (fb FilterBuilder) ForRun(runID uuid.UUID) FilterBuilder {
	fb.filter.runID = runID
	return fb
}

// AnyEventTypeOf adds event types of which any must match.
// Empty and duplicate event types are dropped.
func (fb FilterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) FilterBuilder {
	all := slices.Concat(fb.filter.eventTypes, []string{eventType}, eventTypes)
	all = slices.DeleteFunc(all, func(e string) bool { return e == "" })
	slices.Sort(all)

	fb.filter.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// FromRound restricts the Filter to events of round and later. Negative rounds are treated as 0.
func (fb FilterBuilder) FromRound(round int) FilterBuilder {
	fb.filter.fromRound = max(round, 0)
	fb.filter.hasRound = true

	return fb
}

func (fb FilterBuilder) Finalize() Filter {
	return fb.filter
}
