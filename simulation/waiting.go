package simulation

import (
	"maps"
	"slices"
)

// Arrivals maps a floor to the people appearing there, in arrival order.
type Arrivals = map[int][]*Person

// WaitingRegistry holds the FIFO queue of waiting people per floor.
// A missing floor and an empty queue mean the same thing.
type WaitingRegistry struct {
	queues map[int][]*Person
}

func newWaitingRegistry() *WaitingRegistry {
	return &WaitingRegistry{queues: make(map[int][]*Person)}
}

func (w *WaitingRegistry) enqueue(floor int, people ...*Person) {
	if len(people) == 0 {
		return
	}

	w.queues[floor] = append(w.queues[floor], people...)
}

// dequeue pops the person at the front of the floor's queue.
func (w *WaitingRegistry) dequeue(floor int) (*Person, bool) {
	queue := w.queues[floor]
	if len(queue) == 0 {
		return nil, false
	}

	front := queue[0]
	queue[0] = nil

	if len(queue) == 1 {
		delete(w.queues, floor)
	} else {
		w.queues[floor] = queue[1:]
	}

	return front, true
}

func (w *WaitingRegistry) each(fn func(p *Person)) {
	for _, queue := range w.queues {
		for _, p := range queue {
			fn(p)
		}
	}
}

func (w *WaitingRegistry) total() int {
	total := 0
	for _, queue := range w.queues {
		total += len(queue)
	}

	return total
}

func (w *WaitingRegistry) reset() {
	clear(w.queues)
}

// People returns a copy of the queue waiting at floor.
func (w *WaitingRegistry) People(floor int) []*Person {
	return slices.Clone(w.queues[floor])
}

// View returns a detached snapshot of the per-floor waiting counts.
func (w *WaitingRegistry) View() WaitingView {
	counts := make(map[int]int, len(w.queues))
	for floor, queue := range w.queues {
		if len(queue) > 0 {
			counts[floor] = len(queue)
		}
	}

	return WaitingView{counts: counts}
}

// WaitingView is the read-only per-floor count of waiting people handed to dispatch policies.
type WaitingView struct {
	counts map[int]int
}

// NewWaitingView builds a WaitingView from floor counts. Non-positive counts are dropped.
func NewWaitingView(counts map[int]int) WaitingView {
	cleaned := make(map[int]int, len(counts))
	for floor, count := range counts {
		if count > 0 {
			cleaned[floor] = count
		}
	}

	return WaitingView{counts: cleaned}
}

func (v WaitingView) Count(floor int) int {
	return v.counts[floor]
}

func (v WaitingView) HasWaiters(floor int) bool {
	return v.counts[floor] > 0
}

func (v WaitingView) AnyoneWaiting() bool {
	return len(v.counts) > 0
}

// Floors returns the floors with at least one waiting person in ascending order.
func (v WaitingView) Floors() []int {
	return slices.Sorted(maps.Keys(v.counts))
}

func (v WaitingView) Total() int {
	total := 0
	for _, count := range v.counts {
		total += count
	}

	return total
}
