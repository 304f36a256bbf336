package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

func Test_Direction_ZeroValueIsStay(t *testing.T) {
	var direction simulation.Direction

	assert.Equal(t, simulation.Stay, direction)
	assert.Equal(t, 0, direction.Delta())
	assert.Equal(t, "stay", direction.String())
}

func Test_Direction_Deltas(t *testing.T) {
	assert.Equal(t, 1, simulation.Up.Delta())
	assert.Equal(t, -1, simulation.Down.Delta())
	assert.Equal(t, "up", simulation.Up.String())
	assert.Equal(t, "down", simulation.Down.String())
}

func Test_Towards(t *testing.T) {
	testCases := []struct {
		name     string
		target   int
		current  int
		expected simulation.Direction
	}{
		{name: "target below", target: 2, current: 5, expected: simulation.Down},
		{name: "target above", target: 6, current: 5, expected: simulation.Up},
		{name: "target reached", target: 5, current: 5, expected: simulation.Stay},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, simulation.Towards(tc.target, tc.current))
		})
	}
}

func Test_Direction_KeepsWithin(t *testing.T) {
	assert.False(t, simulation.Down.KeepsWithin(1, 5), "down from the first floor leaves the building")
	assert.False(t, simulation.Up.KeepsWithin(5, 5), "up from the top floor leaves the building")
	assert.True(t, simulation.Stay.KeepsWithin(1, 5))
	assert.True(t, simulation.Stay.KeepsWithin(5, 5))
	assert.True(t, simulation.Up.KeepsWithin(4, 5))
	assert.True(t, simulation.Down.KeepsWithin(2, 5))
}
