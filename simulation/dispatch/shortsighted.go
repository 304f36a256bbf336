package dispatch

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// ShortSighted sends every elevator towards the closest floor it cares about:
// a passenger target when occupied, a floor with somebody waiting when empty.
// At equal distance the floor below wins.
type ShortSighted struct{}

func (ShortSighted) Decide(
	elevators []simulation.ElevatorView,
	waiting simulation.WaitingView,
	maxFloor int,
) ([]simulation.Direction, error) {

	directions := make([]simulation.Direction, len(elevators))

	for i, elevator := range elevators {
		var wanted func(floor int) bool

		switch {
		case !elevator.IsEmpty():
			wanted = func(floor int) bool { return slices.Contains(elevator.PassengerTargets, floor) }

		case waiting.AnyoneWaiting():
			wanted = waiting.HasWaiters

		default:
			directions[i] = simulation.Stay
			continue
		}

		target, found := closestFloor(elevator.CurrentFloor, maxFloor, wanted)
		if !found {
			return nil, fmt.Errorf("%w: elevator %d at floor %d", ErrNoTargetFound, elevator.ID, elevator.CurrentFloor)
		}

		directions[i] = simulation.Towards(target, elevator.CurrentFloor)
	}

	return directions, nil
}

func (ShortSighted) Name() string {
	return "shortsighted"
}

// closestFloor searches outward from current, checking below before above at every distance.
func closestFloor(current, maxFloor int, wanted func(floor int) bool) (int, bool) {
	for distance := 0; distance < maxFloor; distance++ {
		if below := current - distance; below >= 1 && wanted(below) {
			return below, true
		}

		if above := current + distance; above <= maxFloor && wanted(above) {
			return above, true
		}
	}

	return 0, false
}
