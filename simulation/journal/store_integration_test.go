package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/arrivals"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/dispatch"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal"
	. "github.com/AntonStoeckl/elevator-simulation-go/testutil/helper"                 //nolint:revive
	. "github.com/AntonStoeckl/elevator-simulation-go/testutil/helper/postgreswrapper" //nolint:revive
)

func Test_Integration_Journal_RecordsARunThatProjectsToTheEngineStatistics(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	CleanUp(t, wrapper)
	store := wrapper.GetStore()

	recorder, err := journal.NewJournal(store)
	require.NoError(t, err)

	generator, err := arrivals.NewRandomArrivals(6, 2, arrivals.WithSeed(11))
	require.NoError(t, err)

	config := simulation.Config{
		NumFloors:         6,
		NumElevators:      2,
		ElevatorCapacity:  3,
		NumPeoplePerRound: 2,
		ArrivalGenerator:  generator,
		DispatchPolicy:    dispatch.Pushy{},
	}
	engine := GivenEngine(t, config, simulation.WithRecorder(recorder))

	// act
	stats, err := engine.Run(context.Background(), 10)
	require.NoError(t, err)

	events, maxSequenceNumber, err := store.Query(context.Background(), recorder.Filter())

	// assert
	require.NoError(t, err)
	assert.Zero(t, recorder.Failures())
	assert.Len(t, events, recorder.Appended())
	assert.Equal(t, journal.MaxSequenceNumberUint(len(events)), maxSequenceNumber)
	assert.Equal(t, 10, CountEventsOfTypeInDB(t, wrapper, journal.EventTypeRoundEnded))

	projected, err := journal.ProjectSummary(events)
	require.NoError(t, err)
	assert.Equal(t, stats.AsMap(), projected.AsMap())
}

func Test_Integration_Store_Append_WithStaleExpectation_ReturnsConcurrencyConflict(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	CleanUp(t, wrapper)
	store := wrapper.GetStore()
	ctx := context.Background()

	filter := journal.BuildFilter().ForRun(uuid.New()).Finalize()
	event := givenRoundStartedEvent(t, filter.RunID())

	require.NoError(t, store.Append(ctx, filter, 0, event), "error in arranging test data")

	// act
	err := store.Append(ctx, filter, 0, event)

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.Equal(t, 1, CountEventsOfTypeInDB(t, wrapper, journal.EventTypeRoundStarted))
}

func Test_Integration_Store_Append_ToAnotherRun_IsNotAConflict(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	CleanUp(t, wrapper)
	store := wrapper.GetStore()
	ctx := context.Background()

	firstRun := journal.BuildFilter().ForRun(uuid.New()).Finalize()
	secondRun := journal.BuildFilter().ForRun(uuid.New()).Finalize()
	require.NoError(t, store.Append(ctx, firstRun, 0, givenRoundStartedEvent(t, firstRun.RunID())))

	// act
	err := store.Append(ctx, secondRun, 0, givenRoundStartedEvent(t, secondRun.RunID()))

	// assert
	require.NoError(t, err)
	maxSequenceNumber, err := store.MaxSequenceNumber(ctx, secondRun)
	require.NoError(t, err)
	assert.Equal(t, journal.MaxSequenceNumberUint(2), maxSequenceNumber)
}

func givenRoundStartedEvent(t testing.TB, runID uuid.UUID) journal.StorableEvent {
	payload := `{"RunID":"` + runID.String() + `","Round":0}`
	metadata := `{"MessageID":"` + uuid.NewString() + `","CausationID":"","CorrelationID":"` + runID.String() + `"}`

	event, err := journal.BuildStorableEvent(journal.EventTypeRoundStarted, time.Now(), []byte(payload), []byte(metadata))
	require.NoError(t, err, "error in arranging test data")

	return event
}
