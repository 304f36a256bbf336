package observers

import (
	"context"
	"maps"
	"slices"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

// Log messages.
const (
	logMsgRoundStarted      = "round started"
	logMsgPeopleArrived     = "people arrived"
	logMsgPersonDisembarked = "person disembarked"
	logMsgPersonBoarded     = "person boarded"
	logMsgElevatorMoved     = "elevator moved"
	logMsgRoundEnded        = "round ended"
)

// Log attribute keys.
const (
	logAttrRound       = "round"
	logAttrFloor       = "floor"
	logAttrCount       = "count"
	logAttrPerson      = "person"
	logAttrTarget      = "target"
	logAttrWaitTime    = "wait_time"
	logAttrAngerLevel  = "anger_level"
	logAttrElevator    = "elevator"
	logAttrDirection   = "direction"
	logAttrPassengers  = "passengers"
	logAttrFullness    = "fullness"
	logAttrEvents      = "events"
)

// Logging renders the events of each round through a simulation.Logger.
//
// Round boundaries and arrivals are logged at info level, individual boardings,
// disembarkings and moves at debug level.
type Logging struct {
	logger simulation.Logger
	events int
}

// NewLogging creates a Logging observer. A nil logger makes every notification a no-op.
func NewLogging(logger simulation.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) OnRoundStart(_ context.Context, round int) {
	l.events = 0
	l.info(logMsgRoundStarted, logAttrRound, round)
}

func (l *Logging) OnArrivals(_ context.Context, round int, arrivals simulation.Arrivals) {
	for _, floor := range slices.Sorted(maps.Keys(arrivals)) {
		l.events++
		l.info(logMsgPeopleArrived,
			logAttrRound, round,
			logAttrFloor, floor,
			logAttrCount, len(arrivals[floor]))
	}
}

func (l *Logging) OnDisembark(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	l.events++
	l.debug(logMsgPersonDisembarked,
		logAttrPerson, person.ID().String(),
		logAttrElevator, elevator.ID,
		logAttrFloor, elevator.CurrentFloor,
		logAttrWaitTime, person.WaitTime())
}

func (l *Logging) OnBoarding(_ context.Context, person *simulation.Person, elevator simulation.ElevatorView) {
	l.events++
	l.debug(logMsgPersonBoarded,
		logAttrPerson, person.ID().String(),
		logAttrElevator, elevator.ID,
		logAttrFloor, elevator.CurrentFloor,
		logAttrTarget, person.Target(),
		logAttrAngerLevel, person.AngerLevel())
}

func (l *Logging) OnMoves(_ context.Context, elevators []simulation.ElevatorView, directions []simulation.Direction) {
	for i, elevator := range elevators {
		if i >= len(directions) {
			return
		}

		l.events++
		l.debug(logMsgElevatorMoved,
			logAttrElevator, elevator.ID,
			logAttrDirection, directions[i].String(),
			logAttrFloor, elevator.CurrentFloor,
			logAttrPassengers, len(elevator.PassengerTargets),
			logAttrFullness, elevator.Fullness())
	}
}

func (l *Logging) OnRoundEnd(_ context.Context, round int) {
	l.info(logMsgRoundEnded, logAttrRound, round, logAttrEvents, l.events)
}

func (l *Logging) info(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Logging) debug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

var _ simulation.Observer = (*Logging)(nil)
