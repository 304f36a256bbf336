package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

func Test_ComputeStatistics_NobodyCompleted(t *testing.T) {
	stats := simulation.ComputeStatistics(3, 4, nil)

	assert.Equal(t,
		map[string]int{
			"num_iterations":   3,
			"total_people":     4,
			"people_completed": 0,
			"max_time":         -1,
			"min_time":         -1,
			"avg_time":         -1,
		},
		stats.AsMap(),
	)
}

func Test_ComputeStatistics_TruncatesAverage(t *testing.T) {
	stats := simulation.ComputeStatistics(10, 5, []int{4, 1, 2})

	assert.Equal(t, 3, stats.PeopleCompleted)
	assert.Equal(t, 1, stats.MinTime)
	assert.Equal(t, 4, stats.MaxTime)
	assert.Equal(t, 2, stats.AvgTime, "7/3 is truncated")
}

func Test_Statistics_AsMap_HasExactlyTheReportedKeys(t *testing.T) {
	stats := simulation.Statistics{ExpectedPeople: 30}

	assert.Len(t, stats.AsMap(), 6)
	assert.NotContains(t, stats.AsMap(), "expected_people")
}
