package arrivals

import (
	"errors"
)

var ErrInvalidMaxFloor = errors.New("max floor must be at least 2")
var ErrInvalidNumPeople = errors.New("number of people per round must not be negative")
var ErrOpeningFixtureFailed = errors.New("opening fixture file failed")
var ErrMalformedFixtureRecord = errors.New("malformed fixture record")
