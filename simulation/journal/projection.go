package journal

import (
	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// ProjectSummary rebuilds the Statistics of a run from its journal events.
//
// Only rounds with a RoundEnded event count as iterations. People whose start
// equals their target complete on arrival with a wait time of 0.
func ProjectSummary(events StorableEvents) (simulation.Statistics, error) {
	rounds := 0
	arrived := 0
	waitTimes := make([]int, 0)

	for _, event := range events {
		domainEvent, err := DomainEventFrom(event)
		if err != nil {
			return simulation.Statistics{}, err
		}

		switch e := domainEvent.(type) {
		case PersonArrived:
			arrived++

			if e.Start == e.Target {
				waitTimes = append(waitTimes, 0)
			}

		case PersonDisembarked:
			waitTimes = append(waitTimes, e.WaitTime)

		case RoundEnded:
			rounds++
		}
	}

	return simulation.ComputeStatistics(rounds, arrived, waitTimes), nil
}
