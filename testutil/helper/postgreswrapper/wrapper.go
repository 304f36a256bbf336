package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal"
)

// Adapter type constants
const (
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

// Environment variables selecting the test database and adapter.
const (
	EnvTestDSN     = "ELEVATORSIM_TEST_DSN"
	EnvAdapterType = "ADAPTER_TYPE"
)

// TestTableName is the journal table the integration tests write to.
const TestTableName = "simulation_events_test"

// Wrapper interface to abstract over the different database adapters
type Wrapper interface {
	GetStore() *journal.Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *journal.Store
}

func (w *PGXPoolWrapper) GetStore() *journal.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *journal.Store
}

func (w *SQLDBWrapper) GetStore() *journal.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *journal.Store
}

func (w *SQLXWrapper) GetStore() *journal.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE and makes sure the journal table exists.
// The test is skipped when ELEVATORSIM_TEST_DSN is not set.
func CreateWrapperWithTestConfig(t testing.TB) Wrapper {
	dsn := os.Getenv(EnvTestDSN)
	if dsn == "" {
		t.Skipf("%s is not set, skipping the PostgreSQL integration test", EnvTestDSN)
	}

	ctx := context.Background()
	adapterTypeFromEnv := strings.ToLower(os.Getenv(EnvAdapterType))

	var wrapper Wrapper

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		pool, err := pgxpool.New(ctx, dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")
		store, err := journal.NewStoreFromPGXPool(pool, journal.WithTableName(TestTableName))
		require.NoError(t, err, "error creating the journal store in test setup")

		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := sql.Open("postgres", dsn)
		require.NoError(t, err, "error opening the DB in test setup")
		store, err := journal.NewStoreFromSQLDB(db, journal.WithTableName(TestTableName))
		require.NoError(t, err, "error creating the journal store in test setup")

		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLX:
		db, err := sqlx.Open("postgres", dsn)
		require.NoError(t, err, "error opening the DB in test setup")
		store, err := journal.NewStoreFromSQLX(db, journal.WithTableName(TestTableName))
		require.NoError(t, err, "error creating the journal store in test setup")

		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}

	require.NoError(t, wrapper.GetStore().EnsureSchema(ctx), "error creating the journal table in test setup")

	return wrapper
}

// CleanUp empties the journal table for the given wrapper
func CleanUp(t testing.TB, wrapper Wrapper) {
	query := "TRUNCATE TABLE " + pgx.Identifier{TestTableName}.Sanitize() + " RESTART IDENTITY"

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), query)
		require.NoError(t, err, "error cleaning up the journal table")

	case *SQLDBWrapper:
		_, err := w.db.Exec(query)
		require.NoError(t, err, "error cleaning up the journal table")

	case *SQLXWrapper:
		_, err := w.db.Exec(query)
		require.NoError(t, err, "error cleaning up the journal table")

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}
}

// CountEventsOfTypeInDB counts the journal rows with the given event type for the given wrapper
func CountEventsOfTypeInDB(t testing.TB, wrapper Wrapper, eventType string) int {
	query := "SELECT count(*) FROM " + pgx.Identifier{TestTableName}.Sanitize() + " WHERE event_type = $1"

	var cnt int
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		err = w.pool.QueryRow(context.Background(), query, eventType).Scan(&cnt)

	case *SQLDBWrapper:
		err = w.db.QueryRow(query, eventType).Scan(&cnt)

	case *SQLXWrapper:
		err = w.db.Get(&cnt, query, eventType)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error counting events in the journal table")

	return cnt
}
