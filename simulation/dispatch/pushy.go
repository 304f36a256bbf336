package dispatch

import (
	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// Pushy sends an empty elevator towards the lowest floor with somebody waiting
// and an occupied elevator towards the target of its longest-riding passenger.
type Pushy struct{}

func (Pushy) Decide(
	elevators []simulation.ElevatorView,
	waiting simulation.WaitingView,
	_ int,
) ([]simulation.Direction, error) {

	directions := make([]simulation.Direction, len(elevators))

	for i, elevator := range elevators {
		switch {
		case !elevator.IsEmpty():
			directions[i] = simulation.Towards(elevator.PassengerTargets[0], elevator.CurrentFloor)

		case waiting.AnyoneWaiting():
			directions[i] = simulation.Towards(waiting.Floors()[0], elevator.CurrentFloor)

		default:
			directions[i] = simulation.Stay
		}
	}

	return directions, nil
}

func (Pushy) Name() string {
	return "pushy"
}
