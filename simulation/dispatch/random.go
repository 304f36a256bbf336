package dispatch

import (
	"math/rand/v2"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

var randomChoices = []simulation.Direction{simulation.Up, simulation.Down, simulation.Stay}

// Random samples Up, Down, or Stay uniformly per elevator until the sample keeps the elevator inside the building.
type Random struct {
	rng *rand.Rand
}

// RandomOption defines a functional option for configuring Random.
type RandomOption func(*Random)

// WithRand sets the random source.
func WithRand(rng *rand.Rand) RandomOption {
	return func(r *Random) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed makes the decisions reproducible.
func WithSeed(seed uint64) RandomOption {
	return func(r *Random) {
		r.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewRandom creates a Random policy. Without options it is seeded randomly.
func NewRandom(options ...RandomOption) *Random {
	r := &Random{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}

	for _, option := range options {
		option(r)
	}

	return r
}

func (r *Random) Decide(
	elevators []simulation.ElevatorView,
	_ simulation.WaitingView,
	maxFloor int,
) ([]simulation.Direction, error) {

	directions := make([]simulation.Direction, len(elevators))

	for i, elevator := range elevators {
		// Stay is always valid, so this terminates.
		for {
			candidate := randomChoices[r.rng.IntN(len(randomChoices))]
			if candidate.KeepsWithin(elevator.CurrentFloor, maxFloor) {
				directions[i] = candidate
				break
			}
		}
	}

	return directions, nil
}

func (r *Random) Name() string {
	return "random"
}
