package simulation

// Statistic keys of Statistics.AsMap.
const (
	StatNumIterations   = "num_iterations"
	StatTotalPeople     = "total_people"
	StatPeopleCompleted = "people_completed"
	StatMaxTime         = "max_time"
	StatMinTime         = "min_time"
	StatAvgTime         = "avg_time"
)

// Statistics is the aggregate outcome of one run.
//
// MinTime, MaxTime and AvgTime are NoTime when nobody completed a trip.
// AvgTime is truncated toward zero.
type Statistics struct {
	NumIterations   int `json:"num_iterations"`
	TotalPeople     int `json:"total_people"`
	PeopleCompleted int `json:"people_completed"`
	MaxTime         int `json:"max_time"`
	MinTime         int `json:"min_time"`
	AvgTime         int `json:"avg_time"`

	// ExpectedPeople is num_people_per_round times num_rounds, for reporting only.
	ExpectedPeople int `json:"expected_people"`
}

// AsMap returns the six reported statistics keyed by their external names.
func (s Statistics) AsMap() map[string]int {
	return map[string]int{
		StatNumIterations:   s.NumIterations,
		StatTotalPeople:     s.TotalPeople,
		StatPeopleCompleted: s.PeopleCompleted,
		StatMaxTime:         s.MaxTime,
		StatMinTime:         s.MinTime,
		StatAvgTime:         s.AvgTime,
	}
}

// ComputeStatistics aggregates the wait times of completed trips.
func ComputeStatistics(numIterations, totalPeople int, completedWaitTimes []int) Statistics {
	stats := Statistics{
		NumIterations:   numIterations,
		TotalPeople:     totalPeople,
		PeopleCompleted: len(completedWaitTimes),
		MaxTime:         NoTime,
		MinTime:         NoTime,
		AvgTime:         NoTime,
	}

	if len(completedWaitTimes) == 0 {
		return stats
	}

	sum := 0
	stats.MinTime = completedWaitTimes[0]
	stats.MaxTime = completedWaitTimes[0]

	for _, waitTime := range completedWaitTimes {
		sum += waitTime
		stats.MinTime = min(stats.MinTime, waitTime)
		stats.MaxTime = max(stats.MaxTime, waitTime)
	}

	stats.AvgTime = sum / len(completedWaitTimes)

	return stats
}
