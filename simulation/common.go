package simulation

import (
	"errors"
)

var ErrInvalidNumFloors = errors.New("num_floors must be at least 2")
var ErrInvalidNumElevators = errors.New("num_elevators must be at least 1")
var ErrInvalidElevatorCapacity = errors.New("elevator_capacity must be at least 1")
var ErrInvalidPeoplePerRound = errors.New("num_people_per_round must not be negative")
var ErrMissingArrivalGenerator = errors.New("arrival_generator is required")
var ErrMissingDispatchPolicy = errors.New("dispatch_policy is required")
var ErrNilOption = errors.New("nil option supplied")

var ErrInvalidNumRounds = errors.New("num_rounds must be at least 1")
var ErrRunCanceled = errors.New("simulation run canceled")

var ErrInvalidArrival = errors.New("arrival generator produced an invalid person")
var ErrDispatchFailed = errors.New("dispatch policy failed")
var ErrDirectionCountMismatch = errors.New("dispatch policy returned a wrong number of directions")
var ErrDirectionOutOfBounds = errors.New("dispatch policy moved an elevator out of the building")

// NoTime is reported for min, max and average wait times when nobody completed a trip.
const NoTime = -1
