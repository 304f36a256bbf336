package journal_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal"
	. "github.com/AntonStoeckl/elevator-simulation-go/testutil/helper" //nolint:revive
)

// appenderSpy keeps appended events in memory and can be told to fail.
type appenderSpy struct {
	mu        sync.Mutex
	events    journal.StorableEvents
	batches   []int
	expected  []journal.MaxSequenceNumberUint
	appendErr error
}

func (a *appenderSpy) MaxSequenceNumber(_ context.Context, _ journal.Filter) (journal.MaxSequenceNumberUint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return journal.MaxSequenceNumberUint(len(a.events)), nil
}

func (a *appenderSpy) Append(
	_ context.Context,
	_ journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	event journal.StorableEvent,
	additionalEvents ...journal.StorableEvent,
) error {

	a.mu.Lock()
	defer a.mu.Unlock()

	a.expected = append(a.expected, expectedMaxSequenceNumber)
	if a.appendErr != nil {
		return a.appendErr
	}

	a.events = append(a.events, event)
	a.events = append(a.events, additionalEvents...)
	a.batches = append(a.batches, 1+len(additionalEvents))

	return nil
}

func (a *appenderSpy) eventTypes() []string {
	types := make([]string, len(a.events))
	for i, e := range a.events {
		types[i] = e.EventType
	}

	return types
}

func journalConfig(generator simulation.ArrivalGenerator, policy simulation.DispatchPolicy) simulation.Config {
	return simulation.Config{
		NumFloors:         5,
		NumElevators:      1,
		ElevatorCapacity:  2,
		NumPeoplePerRound: 1,
		ArrivalGenerator:  generator,
		DispatchPolicy:    policy,
	}
}

func Test_NewJournal_RejectsNilStore(t *testing.T) {
	_, err := journal.NewJournal(nil)

	assert.ErrorIs(t, err, journal.ErrNilStore)
}

func Test_Journal_RecordsEveryRoundInOneAppend(t *testing.T) {
	// arrange
	store := &appenderSpy{}
	recorder, err := journal.NewJournal(store)
	require.NoError(t, err)

	generator := NewScriptedArrivals().InRound(0, 1, 2)
	policy := &FixedPolicy{Directions: []simulation.Direction{simulation.Up}}
	engine := GivenEngine(t, journalConfig(generator, policy), simulation.WithRecorder(recorder))

	// act
	_, err = engine.Run(context.Background(), 2)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		journal.EventTypeRoundStarted,
		journal.EventTypePersonArrived,
		journal.EventTypePersonBoarded,
		journal.EventTypeElevatorMoved,
		journal.EventTypeRoundEnded,
		journal.EventTypeRoundStarted,
		journal.EventTypePersonDisembarked,
		journal.EventTypeElevatorMoved,
		journal.EventTypeRoundEnded,
	}, store.eventTypes())
	assert.Equal(t, []int{5, 4}, store.batches)
	assert.Equal(t, []journal.MaxSequenceNumberUint{0, 5}, store.expected)
	assert.Equal(t, 9, recorder.Appended())
	assert.Zero(t, recorder.Failures())
	assert.NotEqual(t, uuid.Nil, recorder.RunID())
}

func Test_Journal_ChainsMetadataWithinARun(t *testing.T) {
	// arrange
	store := &appenderSpy{}
	recorder, err := journal.NewJournal(store)
	require.NoError(t, err)
	engine := GivenEngine(t, journalConfig(NoArrivals{}, StayPolicy{}), simulation.WithRecorder(recorder))

	// act
	_, err = engine.Run(context.Background(), 2)

	// assert
	require.NoError(t, err)
	require.NotEmpty(t, store.events)

	runID := recorder.RunID().String()
	causation := runID

	for _, event := range store.events {
		metadata, err := journal.EventMetadataFrom(event)
		require.NoError(t, err)

		assert.Equal(t, runID, metadata.CorrelationID)
		assert.Equal(t, causation, metadata.CausationID)
		causation = metadata.MessageID
	}
}

func Test_Journal_StartsANewRunIDForEveryRun(t *testing.T) {
	store := &appenderSpy{}
	recorder, err := journal.NewJournal(store)
	require.NoError(t, err)
	engine := GivenEngine(t, journalConfig(NoArrivals{}, StayPolicy{}), simulation.WithRecorder(recorder))

	_, err = engine.Run(context.Background(), 1)
	require.NoError(t, err)
	firstRun := recorder.RunID()

	_, err = engine.Run(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, firstRun, recorder.RunID())
}

func Test_Journal_FailedAppendIsCountedAndDoesNotStopTheRun(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	metrics := NewMetricsCollectorSpy(true)
	store := &appenderSpy{appendErr: journal.ErrConcurrencyConflict}
	recorder, err := journal.NewJournal(store,
		journal.WithJournalLogger(slog.New(logHandler)),
		journal.WithJournalMetrics(metrics),
	)
	require.NoError(t, err)

	generator := NewScriptedArrivals().InRound(0, 1, 3)
	engine := GivenEngine(t, journalConfig(generator, StayPolicy{}), simulation.WithRecorder(recorder))

	// act
	stats, err := engine.Run(context.Background(), 3)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPeople)
	assert.Equal(t, 3, recorder.Failures())
	assert.Zero(t, recorder.Appended())
	assert.Equal(t, 3, logHandler.CountLogsWithMessage("journal append failed, round events dropped"))
	assert.True(t,
		logHandler.HasErrorLogWithMessage("journal append failed, round events dropped").
			WithAttributeValue("round", "0").
			WithAttribute("error").
			Assert(), "should log the failed round",
	)
	assert.Equal(t, 3, metrics.CountCounterRecordsForMetric(journal.MetricAppendFailures))
	assert.True(t, metrics.HasDurationRecordForMetric(journal.MetricAppendDuration).WithStatus("error").Assert())
}

func Test_Journal_RoundAbortedByAFailedRunIsNeverAppended(t *testing.T) {
	store := &appenderSpy{}
	recorder, err := journal.NewJournal(store)
	require.NoError(t, err)

	policy := &FixedPolicy{Err: errors.New("no idea")}
	engine := GivenEngine(t, journalConfig(NoArrivals{}, policy), simulation.WithRecorder(recorder))

	_, err = engine.Run(context.Background(), 2)

	assert.ErrorIs(t, err, simulation.ErrDispatchFailed)
	assert.Empty(t, store.events)
}
