package arrivals_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation/arrivals"
)

func Test_NewRandomArrivals_RejectsInvalidInput(t *testing.T) {
	_, err := arrivals.NewRandomArrivals(1, 2)
	assert.ErrorIs(t, err, arrivals.ErrInvalidMaxFloor)

	_, err = arrivals.NewRandomArrivals(5, -1)
	assert.ErrorIs(t, err, arrivals.ErrInvalidNumPeople)
}

func Test_RandomArrivals_Generate_ProducesValidPeople(t *testing.T) {
	// arrange
	generator, err := arrivals.NewRandomArrivals(4, 7, arrivals.WithSeed(1))
	require.NoError(t, err)

	for round := range 200 {
		// act
		generated := generator.Generate(round)

		// assert
		total := 0
		for floor, people := range generated {
			for _, p := range people {
				total++
				assert.Equal(t, floor, p.Start(), "people are keyed by their start floor")
				assert.GreaterOrEqual(t, p.Start(), 1)
				assert.LessOrEqual(t, p.Start(), 4)
				assert.GreaterOrEqual(t, p.Target(), 1)
				assert.LessOrEqual(t, p.Target(), 4)
				assert.NotEqual(t, p.Start(), p.Target())
				assert.Zero(t, p.WaitTime())
			}
		}

		assert.Equal(t, 7, total)
	}
}

func Test_RandomArrivals_Generate_CoversEveryFloorPair(t *testing.T) {
	// arrange
	generator, err := arrivals.NewRandomArrivals(3, 50, arrivals.WithSeed(3))
	require.NoError(t, err)
	seen := make(map[[2]int]bool)

	// act
	for round := range 20 {
		for _, people := range generator.Generate(round) {
			for _, p := range people {
				seen[[2]int{p.Start(), p.Target()}] = true
			}
		}
	}

	// assert
	assert.Len(t, seen, 6, "all ordered pairs of distinct floors should show up")
}

func Test_RandomArrivals_Generate_IsReproducibleWithSeed(t *testing.T) {
	// arrange
	first, err := arrivals.NewRandomArrivals(10, 5, arrivals.WithSeed(99))
	require.NoError(t, err)
	second, err := arrivals.NewRandomArrivals(10, 5, arrivals.WithRand(rand.New(rand.NewPCG(99, 99))))
	require.NoError(t, err)

	for round := range 10 {
		// act
		a := first.Generate(round)
		b := second.Generate(round)

		// assert
		require.Equal(t, len(a), len(b))
		for floor, people := range a {
			require.Len(t, b[floor], len(people))
			for i := range people {
				assert.Equal(t, people[i].Target(), b[floor][i].Target())
			}
		}
	}
}

func Test_RandomArrivals_ZeroPeople(t *testing.T) {
	generator, err := arrivals.NewRandomArrivals(5, 0)
	require.NoError(t, err)

	assert.Empty(t, generator.Generate(0))

	numPeople, fixed := generator.NumPeople()
	assert.Zero(t, numPeople)
	assert.True(t, fixed)
}
