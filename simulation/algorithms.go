package simulation

// ArrivalGenerator produces the people appearing in a round.
//
// Every generated Person must have start and target inside [1, maxFloor] and must be keyed by its start floor.
type ArrivalGenerator interface {
	Generate(round int) Arrivals
}

// DispatchPolicy decides one Direction per elevator, in elevator order.
//
// The returned directions must keep every elevator inside [1, maxFloor].
// The Engine treats any violation as fatal for the run.
type DispatchPolicy interface {
	Decide(elevators []ElevatorView, waiting WaitingView, maxFloor int) ([]Direction, error)
}

// Named is implemented by algorithms that want a stable name in logs, metrics and spans.
type Named interface {
	Name() string
}

func nameOf(algorithm any) string {
	if named, ok := algorithm.(Named); ok {
		return named.Name()
	}

	return "custom"
}
