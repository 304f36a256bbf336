package dispatch

import (
	"errors"
)

var ErrNoTargetFound = errors.New("no target floor found inside the building")
