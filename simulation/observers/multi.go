package observers

import (
	"context"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// Multi forwards every notification to its observers in order.
type Multi []simulation.Observer

// NewMulti creates a Multi and skips nil observers.
func NewMulti(observers ...simulation.Observer) Multi {
	m := make(Multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}

	return m
}

func (m Multi) OnRoundStart(ctx context.Context, round int) {
	for _, o := range m {
		o.OnRoundStart(ctx, round)
	}
}

func (m Multi) OnArrivals(ctx context.Context, round int, arrivals simulation.Arrivals) {
	for _, o := range m {
		o.OnArrivals(ctx, round, arrivals)
	}
}

func (m Multi) OnDisembark(ctx context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	for _, o := range m {
		o.OnDisembark(ctx, person, elevator)
	}
}

func (m Multi) OnBoarding(ctx context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	for _, o := range m {
		o.OnBoarding(ctx, person, elevator)
	}
}

func (m Multi) OnMoves(ctx context.Context, elevators []simulation.ElevatorView, directions []simulation.Direction) {
	for _, o := range m {
		o.OnMoves(ctx, elevators, directions)
	}
}

func (m Multi) OnRoundEnd(ctx context.Context, round int) {
	for _, o := range m {
		o.OnRoundEnd(ctx, round)
	}
}

var _ simulation.Observer = Multi(nil)
