package simulation

import (
	"slices"
)

// firstFloor is where every elevator starts a run.
const firstFloor = 1

// Elevator is one car of the building. It is owned by the Engine.
type Elevator struct {
	id           int
	currentFloor int
	capacity     int
	passengers   []*Person
}

func newElevator(id, capacity int) *Elevator {
	return &Elevator{
		id:           id,
		currentFloor: firstFloor,
		capacity:     capacity,
		passengers:   make([]*Person, 0, capacity),
	}
}

// ID is the 0-based position of the elevator inside the building.
func (e *Elevator) ID() int {
	return e.id
}

func (e *Elevator) CurrentFloor() int {
	return e.currentFloor
}

func (e *Elevator) Capacity() int {
	return e.capacity
}

// Passengers returns the people aboard in boarding order.
func (e *Elevator) Passengers() []*Person {
	return slices.Clone(e.passengers)
}

func (e *Elevator) IsFull() bool {
	return len(e.passengers) >= e.capacity
}

// Fullness is the share of occupied capacity in [0, 1].
func (e *Elevator) Fullness() float64 {
	return float64(len(e.passengers)) / float64(e.capacity)
}

// View returns a detached read-only snapshot of the elevator.
func (e *Elevator) View() ElevatorView {
	targets := make([]int, len(e.passengers))
	for i, p := range e.passengers {
		targets[i] = p.target
	}

	return ElevatorView{
		ID:               e.id,
		CurrentFloor:     e.currentFloor,
		Capacity:         e.capacity,
		PassengerTargets: targets,
	}
}

func (e *Elevator) reset() {
	e.currentFloor = firstFloor
	e.passengers = e.passengers[:0]
}

func (e *Elevator) board(p *Person) {
	e.passengers = append(e.passengers, p)
}

// disembark removes and returns everybody whose target is the current floor.
// The remaining passengers keep their order.
func (e *Elevator) disembark() []*Person {
	arrived := make([]*Person, 0)
	remaining := e.passengers[:0]

	for _, p := range e.passengers {
		if p.target == e.currentFloor {
			arrived = append(arrived, p)
			continue
		}

		remaining = append(remaining, p)
	}

	clear(e.passengers[len(remaining):])
	e.passengers = remaining

	return arrived
}

func (e *Elevator) move(d Direction) {
	e.currentFloor += d.Delta()
}

// ElevatorView is the snapshot of an Elevator handed to dispatch policies and observers.
type ElevatorView struct {
	ID               int
	CurrentFloor     int
	Capacity         int
	PassengerTargets []int
}

func (v ElevatorView) IsEmpty() bool {
	return len(v.PassengerTargets) == 0
}

func (v ElevatorView) Fullness() float64 {
	if v.Capacity == 0 {
		return 0
	}

	return float64(len(v.PassengerTargets)) / float64(v.Capacity)
}

func viewsOf(elevators []*Elevator) []ElevatorView {
	views := make([]ElevatorView, len(elevators))
	for i, e := range elevators {
		views[i] = e.View()
	}

	return views
}
