package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal"
)

const (
	defaultMaxConnections  = 4
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = time.Minute * 5
	defaultConnectTimeout  = time.Second * 5
)

// openJournalStore connects with the configured adapter and makes sure the journal table exists.
// The returned close function releases the connection pool.
func openJournalStore(
	ctx context.Context,
	cfg JournalConfig,
	logger simulation.Logger,
) (*journal.Store, func(), error) {

	options := []journal.Option{journal.WithTableName(cfg.Table), journal.WithLogger(logger)}

	var (
		store   *journal.Store
		closeDB func()
		err     error
	)

	switch cfg.DBAdapter {
	case adapterPGX:
		store, closeDB, err = openPGXStore(ctx, cfg.DSN, options...)
	case adapterSQL:
		store, closeDB, err = openSQLDBStore(ctx, cfg.DSN, options...)
	case adapterSQLX:
		store, closeDB, err = openSQLXStore(ctx, cfg.DSN, options...)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDBAdapter, cfg.DBAdapter)
	}

	if err != nil {
		return nil, nil, err
	}

	if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
		closeDB()
		return nil, nil, schemaErr
	}

	return store, closeDB, nil
}

func openPGXStore(ctx context.Context, dsn string, options ...journal.Option) (*journal.Store, func(), error) {
	poolConfig, parseErr := pgxpool.ParseConfig(dsn)
	if parseErr != nil {
		return nil, nil, fmt.Errorf("failed to parse pgx pool config: %w", parseErr)
	}

	poolConfig.MaxConns = defaultMaxConnections
	poolConfig.MaxConnLifetime = defaultMaxConnLifetime
	poolConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool: %w", poolErr)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", pingErr)
	}

	store, err := journal.NewStoreFromPGXPool(pool, options...)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return store, pool.Close, nil
}

func openSQLDBStore(ctx context.Context, dsn string, options ...journal.Option) (*journal.Store, func(), error) {
	db, openErr := sql.Open("postgres", dsn)
	if openErr != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", openErr)
	}

	closeDB := func() { _ = db.Close() }
	configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", pingErr)
	}

	store, err := journal.NewStoreFromSQLDB(db, options...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return store, closeDB, nil
}

func openSQLXStore(ctx context.Context, dsn string, options ...journal.Option) (*journal.Store, func(), error) {
	db, openErr := sqlx.Open("postgres", dsn)
	if openErr != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", openErr)
	}

	closeDB := func() { _ = db.Close() }
	configurePool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", pingErr)
	}

	store, err := journal.NewStoreFromSQLX(db, options...)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return store, closeDB, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(defaultMaxConnections)
	db.SetMaxIdleConns(defaultMaxConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}

// summarizeJournal reads the run back from the journal and logs the statistics projected from it.
func summarizeJournal(ctx context.Context, store *journal.Store, j *journal.Journal, logger simulation.Logger) {
	events, maxSeq, err := store.Query(ctx, j.Filter())
	if err != nil {
		logger.Error("reading the journal failed", "error", err.Error())
		return
	}

	stats, projectErr := journal.ProjectSummary(events)
	if projectErr != nil {
		logger.Error("projecting the journal failed", "error", projectErr.Error())
		return
	}

	logger.Info("journal summary",
		"run_id", j.RunID().String(),
		"events", len(events),
		"max_sequence_number", maxSeq,
		"appended", j.Appended(),
		"append_failures", j.Failures(),
		"num_iterations", stats.NumIterations,
		"total_people", stats.TotalPeople,
		"people_completed", stats.PeopleCompleted,
		"avg_time", stats.AvgTime)
}
