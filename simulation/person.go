package simulation

import (
	"github.com/google/uuid"
)

// Person is somebody travelling from one floor to another.
//
// Only the Engine changes a Person once it has been handed over by an ArrivalGenerator,
// so all fields are read through getters.
type Person struct {
	id       uuid.UUID
	start    int
	target   int
	waitTime int
}

// NewPerson creates a Person with a fresh ID and zero wait time.
func NewPerson(start, target int) *Person {
	return &Person{
		id:     uuid.New(),
		start:  start,
		target: target,
	}
}

func (p *Person) ID() uuid.UUID {
	return p.id
}

func (p *Person) Start() int {
	return p.start
}

func (p *Person) Target() int {
	return p.target
}

// WaitTime is the number of rounds spent waiting or riding.
func (p *Person) WaitTime() int {
	return p.waitTime
}

// AngerLevel maps the wait time onto 0..4.
func (p *Person) AngerLevel() int {
	return AngerLevelFor(p.waitTime)
}

// AngerLevelFor is the stepwise function behind Person.AngerLevel.
func AngerLevelFor(waitTime int) int {
	switch {
	case waitTime <= 2:
		return 0
	case waitTime <= 4:
		return 1
	case waitTime <= 6:
		return 2
	case waitTime <= 8:
		return 3
	default:
		return 4
	}
}

func (p *Person) tick() {
	p.waitTime++
}

func (p *Person) withinBuilding(maxFloor int) bool {
	return p.start >= 1 && p.start <= maxFloor && p.target >= 1 && p.target <= maxFloor
}
