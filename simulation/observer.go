package simulation

import (
	"context"
)

// Observer receives the events of each round.
//
// Calls are synchronous and happen on the engine goroutine.
// Observers see read-only data and cannot influence the simulation.
type Observer interface {
	OnRoundStart(ctx context.Context, round int)
	OnArrivals(ctx context.Context, round int, arrivals Arrivals)
	OnDisembark(ctx context.Context, person *Person, elevator ElevatorView)
	OnBoarding(ctx context.Context, person *Person, elevator ElevatorView)
	OnMoves(ctx context.Context, elevators []ElevatorView, directions []Direction)
	OnRoundEnd(ctx context.Context, round int)
}

// NoopObserver ignores every notification.
type NoopObserver struct{}

func (NoopObserver) OnRoundStart(context.Context, int) {}
func (NoopObserver) OnArrivals(context.Context, int, Arrivals) {}
func (NoopObserver) OnDisembark(context.Context, *Person, ElevatorView) {}
func (NoopObserver) OnBoarding(context.Context, *Person, ElevatorView) {}
func (NoopObserver) OnMoves(context.Context, []ElevatorView, []Direction) {}
func (NoopObserver) OnRoundEnd(context.Context, int) {}

var _ Observer = NoopObserver{}
