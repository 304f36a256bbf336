// Package journal records the pipeline events of simulation runs in PostgreSQL.
//
// The Journal is a simulation.Observer meant to be registered with simulation.WithRecorder.
// It buffers the events of each round and appends them in one statement when the round ends.
// The journal is an audit log: nothing ever reads it back into a running simulation.
//
// The Store supports pgx, database/sql and sqlx connections:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, err := journal.NewStoreFromPGXPool(pool, journal.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	_ = store.EnsureSchema(ctx)
//
//	recorder, _ := journal.NewJournal(store)
//	engine, _ := simulation.NewEngine(config, simulation.WithRecorder(recorder))
//	stats, _ := engine.Run(ctx, 100)
//
//	events, _, _ := store.Query(ctx, journal.BuildFilter().ForRun(recorder.RunID()).Finalize())
//	replayed, _ := journal.ProjectSummary(events)
package journal
