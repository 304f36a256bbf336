// Package observers provides presentation adapters for the simulation.Observer interface.
//
// Logging renders every pipeline event as a structured log line, which is the textual stand-in
// for a graphical visualization. Multi fans one notification out to several observers.
//
// Usage:
//
//	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
//	engine, err := simulation.NewEngine(config,
//		simulation.WithObserver(observers.NewLogging(logger)),
//	)
package observers
