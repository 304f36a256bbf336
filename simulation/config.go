package simulation

import (
	"errors"
)

// Config holds everything needed to construct an Engine.
type Config struct {
	NumFloors         int
	NumElevators      int
	ElevatorCapacity  int
	NumPeoplePerRound int
	ArrivalGenerator  ArrivalGenerator
	DispatchPolicy    DispatchPolicy

	// Visualize gates the notifications sent to observers registered with WithObserver.
	Visualize bool
}

// Validate checks the Config and returns all violations joined into one error.
func (c Config) Validate() error {
	var errs []error

	if c.NumFloors < 2 {
		errs = append(errs, ErrInvalidNumFloors)
	}

	if c.NumElevators < 1 {
		errs = append(errs, ErrInvalidNumElevators)
	}

	if c.ElevatorCapacity < 1 {
		errs = append(errs, ErrInvalidElevatorCapacity)
	}

	if c.NumPeoplePerRound < 0 {
		errs = append(errs, ErrInvalidPeoplePerRound)
	}

	if c.ArrivalGenerator == nil {
		errs = append(errs, ErrMissingArrivalGenerator)
	}

	if c.DispatchPolicy == nil {
		errs = append(errs, ErrMissingDispatchPolicy)
	}

	return errors.Join(errs...)
}
