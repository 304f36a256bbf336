package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/dispatch"
)

func elevatorAt(floor int, passengerTargets ...int) simulation.ElevatorView {
	return simulation.ElevatorView{CurrentFloor: floor, Capacity: 4, PassengerTargets: passengerTargets}
}

func Test_Pushy_Decide(t *testing.T) {
	testCases := []struct {
		name     string
		elevator simulation.ElevatorView
		waiting  map[int]int
		expected simulation.Direction
	}{
		{name: "empty and nobody waiting", elevator: elevatorAt(3), expected: simulation.Stay},
		{name: "empty heads to the lowest waiting floor", elevator: elevatorAt(3), waiting: map[int]int{5: 1, 2: 1}, expected: simulation.Down},
		{name: "empty below the lowest waiting floor", elevator: elevatorAt(1), waiting: map[int]int{5: 1, 4: 2}, expected: simulation.Up},
		{name: "empty on the lowest waiting floor", elevator: elevatorAt(2), waiting: map[int]int{2: 1, 6: 1}, expected: simulation.Stay},
		{name: "occupied serves the first passenger", elevator: elevatorAt(3, 5, 1), waiting: map[int]int{1: 3}, expected: simulation.Up},
		{name: "occupied going down", elevator: elevatorAt(4, 2, 6), expected: simulation.Down},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			directions, err := dispatch.Pushy{}.Decide(
				[]simulation.ElevatorView{tc.elevator},
				simulation.NewWaitingView(tc.waiting),
				6,
			)

			// assert
			require.NoError(t, err)
			assert.Equal(t, []simulation.Direction{tc.expected}, directions)
		})
	}
}

func Test_Pushy_Decide_OneDirectionPerElevatorInOrder(t *testing.T) {
	directions, err := dispatch.Pushy{}.Decide(
		[]simulation.ElevatorView{elevatorAt(6), elevatorAt(1, 3), elevatorAt(4)},
		simulation.NewWaitingView(map[int]int{4: 1}),
		6,
	)

	require.NoError(t, err)
	assert.Equal(t, []simulation.Direction{simulation.Down, simulation.Up, simulation.Stay}, directions)
}
