package helper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// GivenPeople creates one Person per (start, target) pair.
func GivenPeople(t testing.TB, startTargetPairs ...int) []*simulation.Person {
	require.Zero(t, len(startTargetPairs)%2, "error in arranging test data: odd number of floors")

	people := make([]*simulation.Person, 0, len(startTargetPairs)/2)
	for i := 0; i < len(startTargetPairs); i += 2 {
		people = append(people, simulation.NewPerson(startTargetPairs[i], startTargetPairs[i+1]))
	}

	return people
}

// GivenEngine builds an Engine and fails the test on a config error.
func GivenEngine(t testing.TB, config simulation.Config, options ...simulation.Option) *simulation.Engine {
	engine, err := simulation.NewEngine(config, options...)
	require.NoError(t, err, "error in arranging test data")

	return engine
}

// ElevatorFloors extracts the current floors of all elevators.
func ElevatorFloors(views []simulation.ElevatorView) []int {
	floors := make([]int, len(views))
	for i, view := range views {
		floors[i] = view.CurrentFloor
	}

	return floors
}

// PersonIDs extracts the IDs of people, keeping their order.
func PersonIDs(people []*simulation.Person) []string {
	ids := make([]string, len(people))
	for i, p := range people {
		ids[i] = p.ID().String()
	}

	return ids
}
