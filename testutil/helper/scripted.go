package helper

import (
	"sync"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// ScriptedArrivals is an ArrivalGenerator that creates fresh people from prepared (start, target) pairs per round.
type ScriptedArrivals struct {
	rounds map[int][][2]int
	calls  []int
}

func NewScriptedArrivals() *ScriptedArrivals {
	return &ScriptedArrivals{rounds: make(map[int][][2]int)}
}

// InRound adds one person per (start, target) pair to the given round.
func (s *ScriptedArrivals) InRound(round int, startTargetPairs ...int) *ScriptedArrivals {
	for i := 0; i+1 < len(startTargetPairs); i += 2 {
		s.rounds[round] = append(s.rounds[round], [2]int{startTargetPairs[i], startTargetPairs[i+1]})
	}

	return s
}

func (s *ScriptedArrivals) Generate(round int) simulation.Arrivals {
	s.calls = append(s.calls, round)

	arrivals := make(simulation.Arrivals)
	for _, pair := range s.rounds[round] {
		arrivals[pair[0]] = append(arrivals[pair[0]], simulation.NewPerson(pair[0], pair[1]))
	}

	return arrivals
}

// Calls returns the rounds Generate was called for.
func (s *ScriptedArrivals) Calls() []int {
	return s.calls
}

func (s *ScriptedArrivals) Name() string {
	return "scripted"
}

// RawArrivals is an ArrivalGenerator returning the given mapping unchecked for every round.
type RawArrivals simulation.Arrivals

func (r RawArrivals) Generate(_ int) simulation.Arrivals {
	return simulation.Arrivals(r)
}

// NoArrivals is an ArrivalGenerator that never produces anybody.
type NoArrivals struct{}

func (NoArrivals) Generate(_ int) simulation.Arrivals {
	return simulation.Arrivals{}
}

// FixedPolicy is a DispatchPolicy returning the same directions every round
// and recording what it was shown.
type FixedPolicy struct {
	Directions []simulation.Direction
	Err        error

	mu       sync.Mutex
	seen     [][]simulation.ElevatorView
	waitings []simulation.WaitingView
}

func (f *FixedPolicy) Decide(
	elevators []simulation.ElevatorView,
	waiting simulation.WaitingView,
	_ int,
) ([]simulation.Direction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seen = append(f.seen, elevators)
	f.waitings = append(f.waitings, waiting)

	if f.Err != nil {
		return nil, f.Err
	}

	return f.Directions, nil
}

// Seen returns the elevator views passed to each Decide call.
func (f *FixedPolicy) Seen() [][]simulation.ElevatorView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seen
}

// SeenWaiting returns the waiting views passed to each Decide call.
func (f *FixedPolicy) SeenWaiting() []simulation.WaitingView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.waitings
}

// StayPolicy keeps every elevator where it is.
type StayPolicy struct{}

func (StayPolicy) Decide(elevators []simulation.ElevatorView, _ simulation.WaitingView, _ int) ([]simulation.Direction, error) {
	return make([]simulation.Direction, len(elevators)), nil
}

func (StayPolicy) Name() string {
	return "stay"
}
