package simulation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Engine runs the simulation. It is single-threaded and owns all mutable state:
// the elevators, the waiting registry, and the completed people.
type Engine struct {
	config    Config
	elevators []*Elevator
	waiting   *WaitingRegistry
	completed []*Person

	totalPeople int

	observers []Observer
	recorders []Observer

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector

	policyName    string
	generatorName string
}

// NewEngine validates the Config and creates an Engine with its elevators.
func NewEngine(config Config, options ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:        config,
		elevators:     make([]*Elevator, config.NumElevators),
		waiting:       newWaitingRegistry(),
		completed:     make([]*Person, 0),
		policyName:    nameOf(config.DispatchPolicy),
		generatorName: nameOf(config.ArrivalGenerator),
	}

	for i := range e.elevators {
		e.elevators[i] = newElevator(i, config.ElevatorCapacity)
	}

	for _, option := range options {
		if option == nil {
			return nil, ErrNilOption
		}

		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Config returns the validated configuration the Engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Elevators returns snapshots of all elevators in elevator order.
func (e *Engine) Elevators() []ElevatorView {
	return viewsOf(e.elevators)
}

// Waiting returns a snapshot of the per-floor waiting counts.
func (e *Engine) Waiting() WaitingView {
	return e.waiting.View()
}

// WaitingAt returns the queue waiting at floor, front first.
func (e *Engine) WaitingAt(floor int) []*Person {
	return e.waiting.People(floor)
}

// Completed returns everybody who reached their target in the last run, in completion order.
func (e *Engine) Completed() []*Person {
	return slices.Clone(e.completed)
}

// Run resets the building and simulates numRounds rounds, numbered from 0.
//
// A policy or generator contract violation aborts the run with an error.
// The context is checked between rounds.
func (e *Engine) Run(ctx context.Context, numRounds int) (Statistics, error) {
	if numRounds < 1 {
		return Statistics{}, ErrInvalidNumRounds
	}

	ctx, span := e.startRunSpan(ctx, numRounds)
	start := time.Now()

	e.reset()
	e.logInfo(ctx, logMsgRunStarted,
		logAttrNumRounds, numRounds,
		logAttrPolicy, e.policyName,
		logAttrGenerator, e.generatorName)

	for round := range numRounds {
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr := errors.Join(ErrRunCanceled, ctxErr)
			e.failRun(ctx, span, runErr, errorTypeCanceled, round, time.Since(start))

			return Statistics{}, runErr
		}

		if err := e.runRound(ctx, round); err != nil {
			e.failRun(ctx, span, err, errorTypeOf(err), round, time.Since(start))

			return Statistics{}, err
		}
	}

	stats := e.statistics(numRounds)
	duration := time.Since(start)

	e.recordDuration(ctx, MetricRunDuration, duration, e.runLabels(StatusSuccess))
	e.finishRunSpanSuccess(span, stats)
	e.logInfo(ctx, logMsgRunCompleted,
		logAttrNumRounds, stats.NumIterations,
		logAttrTotalPeople, stats.TotalPeople,
		logAttrPeopleCompleted, stats.PeopleCompleted,
		logAttrAvgTime, stats.AvgTime,
		logAttrDurationMS, toMilliseconds(duration))

	return stats, nil
}

func (e *Engine) reset() {
	for _, elevator := range e.elevators {
		elevator.reset()
	}

	e.waiting.reset()
	e.completed = e.completed[:0]
	e.totalPeople = 0
}

func (e *Engine) statistics(numRounds int) Statistics {
	waitTimes := make([]int, len(e.completed))
	for i, p := range e.completed {
		waitTimes[i] = p.waitTime
	}

	stats := ComputeStatistics(numRounds, e.totalPeople, waitTimes)
	stats.ExpectedPeople = e.config.NumPeoplePerRound * numRounds

	return stats
}

func (e *Engine) runRound(ctx context.Context, round int) error {
	roundCtx, span := e.startRoundSpan(ctx, round)
	start := time.Now()

	e.notify(roundCtx, func(o Observer) { o.OnRoundStart(roundCtx, round) })

	if err := e.generateArrivals(roundCtx, round); err != nil {
		e.finishSpan(span, StatusError, map[string]string{spanAttrErrorType: errorTypeOf(err)})
		return err
	}

	e.disembarkPassengers(roundCtx)
	e.boardWaitingPeople(roundCtx)

	if err := e.moveElevators(roundCtx); err != nil {
		e.finishSpan(span, StatusError, map[string]string{spanAttrErrorType: errorTypeOf(err)})
		return err
	}

	e.ageWaitTimes()

	e.notify(roundCtx, func(o Observer) { o.OnRoundEnd(roundCtx, round) })

	duration := time.Since(start)
	e.recordRoundMetrics(roundCtx, duration)
	e.finishSpan(span, StatusSuccess, nil)
	e.logDebug(roundCtx, logMsgRoundCompleted,
		logAttrRound, round,
		logAttrWaiting, e.waiting.total(),
		logAttrCompleted, len(e.completed),
		logAttrDurationMS, toMilliseconds(duration))

	return nil
}

// generateArrivals validates the whole batch before anybody enters the building.
func (e *Engine) generateArrivals(ctx context.Context, round int) error {
	arrivals := e.config.ArrivalGenerator.Generate(round)
	floors := slices.Sorted(maps.Keys(arrivals))

	for _, floor := range floors {
		for _, p := range arrivals[floor] {
			if p == nil {
				return fmt.Errorf("%w: round %d, floor %d: nil person", ErrInvalidArrival, round, floor)
			}

			if p.start != floor || !p.withinBuilding(e.config.NumFloors) {
				return fmt.Errorf("%w: round %d, floor %d: start %d, target %d",
					ErrInvalidArrival, round, floor, p.start, p.target)
			}
		}
	}

	arrived := 0

	for _, floor := range floors {
		for _, p := range arrivals[floor] {
			arrived++

			// Nobody needs an elevator to reach the floor they are on.
			if p.start == p.target {
				e.completed = append(e.completed, p)
				e.incrementCounter(ctx, MetricPeopleCompleted, nil)
				continue
			}

			e.waiting.enqueue(floor, p)
		}
	}

	e.totalPeople += arrived
	e.recordValue(ctx, MetricPeopleArrived, float64(arrived), nil)

	if arrived > 0 {
		snapshot := cloneArrivals(arrivals)
		e.notify(ctx, func(o Observer) { o.OnArrivals(ctx, round, snapshot) })
	}

	return nil
}

func (e *Engine) disembarkPassengers(ctx context.Context) {
	for _, elevator := range e.elevators {
		arrived := elevator.disembark()
		if len(arrived) == 0 {
			continue
		}

		e.completed = append(e.completed, arrived...)
		view := elevator.View()

		for _, p := range arrived {
			e.incrementCounter(ctx, MetricPeopleCompleted, nil)
			e.notify(ctx, func(o Observer) { o.OnDisembark(ctx, p, view) })
		}
	}
}

func (e *Engine) boardWaitingPeople(ctx context.Context) {
	for _, elevator := range e.elevators {
		for !elevator.IsFull() {
			p, ok := e.waiting.dequeue(elevator.currentFloor)
			if !ok {
				break
			}

			elevator.board(p)
			view := elevator.View()

			e.incrementCounter(ctx, MetricPeopleBoarded, nil)
			e.notify(ctx, func(o Observer) { o.OnBoarding(ctx, p, view) })
		}
	}
}

// moveElevators validates every decided Direction before applying any of them. Directions are never clamped.
func (e *Engine) moveElevators(ctx context.Context) error {
	views := viewsOf(e.elevators)

	start := time.Now()
	directions, err := e.config.DispatchPolicy.Decide(views, e.waiting.View(), e.config.NumFloors)
	e.recordDuration(ctx, MetricDispatchDuration, time.Since(start), map[string]string{labelPolicy: e.policyName})

	if err != nil {
		return errors.Join(ErrDispatchFailed, err)
	}

	if len(directions) != len(e.elevators) {
		return fmt.Errorf("%w: got %d for %d elevators",
			ErrDirectionCountMismatch, len(directions), len(e.elevators))
	}

	for i, elevator := range e.elevators {
		if !directions[i].KeepsWithin(elevator.currentFloor, e.config.NumFloors) {
			return fmt.Errorf("%w: elevator %d at floor %d cannot move %s in a building with %d floors",
				ErrDirectionOutOfBounds, i, elevator.currentFloor, directions[i], e.config.NumFloors)
		}
	}

	for i, elevator := range e.elevators {
		elevator.move(directions[i])
	}

	moved := viewsOf(e.elevators)
	decided := slices.Clone(directions)
	e.notify(ctx, func(o Observer) { o.OnMoves(ctx, moved, decided) })

	return nil
}

func (e *Engine) ageWaitTimes() {
	e.waiting.each(func(p *Person) { p.tick() })

	for _, elevator := range e.elevators {
		for _, p := range elevator.passengers {
			p.tick()
		}
	}
}

// notify delivers one notification to the recorders and, when visualizing, to the observers.
// A panicking observer loses the notification; the run goes on.
func (e *Engine) notify(ctx context.Context, call func(o Observer)) {
	for _, recorder := range e.recorders {
		e.safeNotify(ctx, recorder, call)
	}

	if !e.config.Visualize {
		return
	}

	for _, observer := range e.observers {
		e.safeNotify(ctx, observer, call)
	}
}

func (e *Engine) safeNotify(ctx context.Context, o Observer, call func(o Observer)) {
	defer func() {
		if r := recover(); r != nil {
			e.incrementCounter(ctx, MetricObserverFailures, nil)
			e.logWarn(ctx, logMsgObserverPanicked, logAttrObserver, fmt.Sprintf("%T", o), logAttrPanic, fmt.Sprint(r))
		}
	}()

	call(o)
}

func cloneArrivals(arrivals Arrivals) Arrivals {
	snapshot := make(Arrivals, len(arrivals))
	for floor, people := range arrivals {
		if len(people) > 0 {
			snapshot[floor] = slices.Clone(people)
		}
	}

	return snapshot
}
