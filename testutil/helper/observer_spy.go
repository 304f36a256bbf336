package helper

import (
	"context"
	"fmt"
	"sync"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// ObserverSpy is an Observer that records every notification as a short line, e.g. "board 1 e0".
type ObserverSpy struct {
	mu         sync.Mutex
	calls      []string
	boarded    []*simulation.Person
	disembarks []*simulation.Person
	moves      [][]simulation.Direction
	panicOn    string
}

func NewObserverSpy() *ObserverSpy {
	return &ObserverSpy{calls: make([]string, 0)}
}

// PanickingOn makes the spy panic on the notification with the given kind, e.g. "board".
func (s *ObserverSpy) PanickingOn(kind string) *ObserverSpy {
	s.panicOn = kind
	return s
}

func (s *ObserverSpy) OnRoundStart(_ context.Context, round int) {
	s.record("round_start", fmt.Sprintf("round_start %d", round))
}

func (s *ObserverSpy) OnArrivals(_ context.Context, round int, arrivals simulation.Arrivals) {
	total := 0
	for _, people := range arrivals {
		total += len(people)
	}

	s.record("arrivals", fmt.Sprintf("arrivals %d %d", round, total))
}

func (s *ObserverSpy) OnDisembark(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	s.mu.Lock()
	s.disembarks = append(s.disembarks, person)
	s.mu.Unlock()

	s.record("disembark", fmt.Sprintf("disembark %d e%d", person.Target(), elevator.ID))
}

func (s *ObserverSpy) OnBoarding(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	s.mu.Lock()
	s.boarded = append(s.boarded, person)
	s.mu.Unlock()

	s.record("board", fmt.Sprintf("board %d e%d", person.Start(), elevator.ID))
}

func (s *ObserverSpy) OnMoves(_ context.Context, _ []simulation.ElevatorView, directions []simulation.Direction) {
	s.mu.Lock()
	s.moves = append(s.moves, directions)
	s.mu.Unlock()

	s.record("moves", fmt.Sprintf("moves %v", directions))
}

func (s *ObserverSpy) OnRoundEnd(_ context.Context, round int) {
	s.record("round_end", fmt.Sprintf("round_end %d", round))
}

func (s *ObserverSpy) record(kind, call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	if s.panicOn == kind {
		panic("observer spy panics on " + kind)
	}
}

// Calls returns all recorded notifications in order.
func (s *ObserverSpy) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make([]string, len(s.calls))
	copy(calls, s.calls)

	return calls
}

func (s *ObserverSpy) Boarded() []*simulation.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.boarded
}

func (s *ObserverSpy) Disembarked() []*simulation.Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.disembarks
}

func (s *ObserverSpy) Moves() [][]simulation.Direction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.moves
}

var _ simulation.Observer = (*ObserverSpy)(nil)
