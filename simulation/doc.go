// Package simulation provides the round-based elevator simulation engine
// and the abstractions its pluggable algorithms are written against.
//
// One round runs a fixed pipeline:
//  1. generate arrivals
//  2. disembark passengers who reached their target
//  3. board waiting people in FIFO order
//  4. move every elevator one floor as decided by the DispatchPolicy
//  5. age the wait time of everybody still waiting or riding
//
// Key types:
//   - Engine: owns all mutable state and drives the pipeline
//   - Config: validated construction parameters
//   - ArrivalGenerator: produces new people for a round
//   - DispatchPolicy: decides one Direction per elevator
//   - Observer: receives per-round notifications (presentation, journaling)
//   - Statistics: aggregate outcome of a run
//
// Common usage pattern:
//
//	engine, err := simulation.NewEngine(
//		simulation.Config{
//			NumFloors:         6,
//			NumElevators:      2,
//			ElevatorCapacity:  3,
//			NumPeoplePerRound: 2,
//			ArrivalGenerator:  generator,
//			DispatchPolicy:    dispatch.ShortSighted{},
//		},
//		simulation.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		// handle config error
//	}
//
//	stats, err := engine.Run(ctx, 15)
package simulation
