package dispatch_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/dispatch"
)

func Test_Random_Decide_NeverLeavesTheBuilding(t *testing.T) {
	// arrange
	policy := dispatch.NewRandom(dispatch.WithSeed(5))
	elevators := []simulation.ElevatorView{elevatorAt(1), elevatorAt(3), elevatorAt(4)}
	seen := make(map[simulation.Direction]bool)

	for range 500 {
		// act
		directions, err := policy.Decide(elevators, simulation.NewWaitingView(nil), 4)

		// assert
		require.NoError(t, err)
		require.Len(t, directions, 3)
		assert.NotEqual(t, simulation.Down, directions[0], "no down from the first floor")
		assert.NotEqual(t, simulation.Up, directions[2], "no up from the top floor")

		for _, d := range directions {
			seen[d] = true
		}
	}

	assert.Len(t, seen, 3, "every direction shows up eventually")
}

func Test_Random_Decide_TwoFloorBuildingWithBothFloorsOccupied(t *testing.T) {
	policy := dispatch.NewRandom(dispatch.WithRand(rand.New(rand.NewPCG(1, 2))))

	for range 100 {
		directions, err := policy.Decide([]simulation.ElevatorView{elevatorAt(1), elevatorAt(2)}, simulation.NewWaitingView(nil), 2)

		require.NoError(t, err)
		assert.True(t, directions[0].KeepsWithin(1, 2))
		assert.True(t, directions[1].KeepsWithin(2, 2))
	}
}

func Test_Random_Decide_IsReproducibleWithSeed(t *testing.T) {
	elevators := []simulation.ElevatorView{elevatorAt(2), elevatorAt(3)}
	first := dispatch.NewRandom(dispatch.WithSeed(11))
	second := dispatch.NewRandom(dispatch.WithSeed(11))

	for range 20 {
		a, errA := first.Decide(elevators, simulation.NewWaitingView(nil), 5)
		b, errB := second.Decide(elevators, simulation.NewWaitingView(nil), 5)

		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	}
}
