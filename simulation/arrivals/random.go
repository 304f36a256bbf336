package arrivals

import (
	"math/rand/v2"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// RandomArrivals creates exactly numPeople people per round.
// The start floor is uniform over the building, the target uniform over the remaining floors.
type RandomArrivals struct {
	maxFloor  int
	numPeople int
	rng       *rand.Rand
}

// RandomOption defines a functional option for configuring RandomArrivals.
type RandomOption func(*RandomArrivals)

// WithRand sets the random source, e.g. to share one source between generator and policy.
func WithRand(rng *rand.Rand) RandomOption {
	return func(r *RandomArrivals) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed makes the generated arrivals reproducible.
func WithSeed(seed uint64) RandomOption {
	return func(r *RandomArrivals) {
		r.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewRandomArrivals creates a RandomArrivals generator. Without options it is seeded randomly.
func NewRandomArrivals(maxFloor, numPeople int, options ...RandomOption) (*RandomArrivals, error) {
	if maxFloor < 2 {
		return nil, ErrInvalidMaxFloor
	}

	if numPeople < 0 {
		return nil, ErrInvalidNumPeople
	}

	r := &RandomArrivals{
		maxFloor:  maxFloor,
		numPeople: numPeople,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, option := range options {
		option(r)
	}

	return r, nil
}

func (r *RandomArrivals) Generate(_ int) simulation.Arrivals {
	arrivals := make(simulation.Arrivals)

	for range r.numPeople {
		start := r.rng.IntN(r.maxFloor) + 1

		target := r.rng.IntN(r.maxFloor-1) + 1
		if target >= start {
			target++
		}

		arrivals[start] = append(arrivals[start], simulation.NewPerson(start, target))
	}

	return arrivals
}

// NumPeople reports the fixed number of people per round.
func (r *RandomArrivals) NumPeople() (int, bool) {
	return r.numPeople, true
}

func (r *RandomArrivals) Name() string {
	return "random"
}
