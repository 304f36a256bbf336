package journal

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

const (
	MetricEventsAppended = "journal_events_appended_total"
	MetricAppendFailures = "journal_append_failures_total"
	MetricAppendDuration = "journal_append_duration_seconds"

	logMsgRunStarted     = "journal recording run"
	logMsgAppendFailed   = "journal append failed, round events dropped"
	logMsgEncodingFailed = "journal event encoding failed"
	logAttrRunID         = "run_id"
	logAttrRound         = "round"
	labelStatus          = "status"
	statusSuccess        = "success"
	statusError          = "error"
)

// EventAppender is the part of the Store the Journal writes through.
type EventAppender interface {
	MaxSequenceNumber(ctx context.Context, filter Filter) (MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter Filter,
		expectedMaxSequenceNumber MaxSequenceNumberUint,
		event StorableEvent,
		additionalEvents ...StorableEvent,
	) error
}

// Journal is a simulation.Observer that records every run in an EventAppender.
//
// Round 0 starts a new run with a fresh run ID. The events of a round are appended
// together when the round ends. A failed append is logged and counted, the round's
// events are dropped, and the simulation keeps running.
type Journal struct {
	store   EventAppender
	logger  simulation.Logger
	metrics simulation.MetricsCollector

	runID    uuid.UUID
	round    int
	causedBy uuid.UUID
	buffer   StorableEvents
	failures int
	appended int
}

func NewJournal(store EventAppender, options ...JournalOption) (*Journal, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	j := &Journal{
		store:  store,
		buffer: make(StorableEvents, 0),
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// RunID identifies the run currently or last recorded. It is uuid.Nil before the first run.
func (j *Journal) RunID() uuid.UUID {
	return j.runID
}

// Failures counts rounds whose events could not be recorded.
func (j *Journal) Failures() int {
	return j.failures
}

// Appended counts the events recorded successfully.
func (j *Journal) Appended() int {
	return j.appended
}

// Filter selects the events of the run currently or last recorded.
func (j *Journal) Filter() Filter {
	return BuildFilter().ForRun(j.runID).Finalize()
}

func (j *Journal) OnRoundStart(_ context.Context, round int) {
	if round == 0 {
		j.runID = uuid.New()
		j.causedBy = j.runID

		if j.logger != nil {
			j.logger.Info(logMsgRunStarted, logAttrRunID, j.runID.String())
		}
	}

	j.round = round
	j.buffer = j.buffer[:0]
	j.record(EventTypeRoundStarted, RoundStarted{RunID: j.runID.String(), Round: round})
}

func (j *Journal) OnArrivals(_ context.Context, round int, arrivals simulation.Arrivals) {
	for _, floor := range slices.Sorted(maps.Keys(arrivals)) {
		for _, person := range arrivals[floor] {
			j.record(EventTypePersonArrived, PersonArrived{
				RunID:    j.runID.String(),
				Round:    round,
				PersonID: person.ID().String(),
				Start:    person.Start(),
				Target:   person.Target(),
			})
		}
	}
}

func (j *Journal) OnDisembark(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	j.record(EventTypePersonDisembarked, PersonDisembarked{
		RunID:    j.runID.String(),
		Round:    j.round,
		PersonID: person.ID().String(),
		Elevator: elevator.ID,
		Floor:    elevator.CurrentFloor,
		WaitTime: person.WaitTime(),
	})
}

func (j *Journal) OnBoarding(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	j.record(EventTypePersonBoarded, PersonBoarded{
		RunID:    j.runID.String(),
		Round:    j.round,
		PersonID: person.ID().String(),
		Elevator: elevator.ID,
		Floor:    elevator.CurrentFloor,
		WaitTime: person.WaitTime(),
	})
}

func (j *Journal) OnMoves(_ context.Context, elevators []simulation.ElevatorView, directions []simulation.Direction) {
	for i, elevator := range elevators {
		if i >= len(directions) {
			return
		}

		j.record(EventTypeElevatorMoved, ElevatorMoved{
			RunID:      j.runID.String(),
			Round:      j.round,
			Elevator:   elevator.ID,
			Direction:  directions[i].String(),
			Floor:      elevator.CurrentFloor,
			Passengers: len(elevator.PassengerTargets),
		})
	}
}

func (j *Journal) OnRoundEnd(ctx context.Context, round int) {
	j.record(EventTypeRoundEnded, RoundEnded{RunID: j.runID.String(), Round: round})
	j.flush(ctx)
}

func (j *Journal) record(eventType string, payload any) {
	messageID := uuid.New()
	metadata := buildEventMetadata(messageID, j.causedBy, j.runID)

	event, err := storableEventFrom(eventType, time.Now().UTC(), payload, metadata)
	if err != nil {
		if j.logger != nil {
			j.logger.Error(logMsgEncodingFailed, logAttrEventType, eventType, logAttrError, err.Error())
		}

		return
	}

	j.causedBy = messageID
	j.buffer = append(j.buffer, event)
}

// flush appends the buffered round in one statement, guarded by the run's current max sequence number.
func (j *Journal) flush(ctx context.Context) {
	if len(j.buffer) == 0 {
		return
	}

	defer func() { j.buffer = j.buffer[:0] }()

	start := time.Now()
	filter := j.Filter()

	expected, err := j.store.MaxSequenceNumber(ctx, filter)
	if err == nil {
		err = j.store.Append(ctx, filter, expected, j.buffer[0], j.buffer[1:]...)
	}

	if err != nil {
		j.failures++
		j.recordDuration(time.Since(start), statusError)
		j.increment(MetricAppendFailures)

		if j.logger != nil {
			j.logger.Error(logMsgAppendFailed,
				logAttrRunID, j.runID.String(),
				logAttrRound, j.round,
				logAttrEventCount, len(j.buffer),
				logAttrError, err.Error())
		}

		return
	}

	j.appended += len(j.buffer)
	j.recordDuration(time.Since(start), statusSuccess)

	for range j.buffer {
		j.increment(MetricEventsAppended)
	}
}

func (j *Journal) recordDuration(duration time.Duration, status string) {
	if j.metrics != nil {
		j.metrics.RecordDuration(MetricAppendDuration, duration, map[string]string{labelStatus: status})
	}
}

func (j *Journal) increment(metric string) {
	if j.metrics != nil {
		j.metrics.IncrementCounter(metric, nil)
	}
}

var _ simulation.Observer = (*Journal)(nil)
