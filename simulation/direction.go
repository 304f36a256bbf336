package simulation

// Direction is the move an elevator makes in one round.
// The zero value is Stay. Only Up, Down and Stay exist.
type Direction struct {
	delta int
}

var (
	Up   = Direction{delta: 1}
	Down = Direction{delta: -1}
	Stay = Direction{delta: 0}
)

// Delta returns the floor change this Direction applies.
func (d Direction) Delta() int {
	return d.delta
}

func (d Direction) String() string {
	switch d.delta {
	case 1:
		return "up"
	case -1:
		return "down"
	default:
		return "stay"
	}
}

// KeepsWithin reports whether moving from currentFloor stays inside [1, maxFloor].
func (d Direction) KeepsWithin(currentFloor, maxFloor int) bool {
	next := currentFloor + d.delta

	return next >= 1 && next <= maxFloor
}

// Towards returns the Direction that brings an elevator at current one floor closer to target.
func Towards(target, current int) Direction {
	switch {
	case target < current:
		return Down
	case target > current:
		return Up
	default:
		return Stay
	}
}
