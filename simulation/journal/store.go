package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal/internal/adapters"
)

const (
	defaultTableName               = "simulation_events"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSchemaEnsured            = "schema ensured"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "journal operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrTable                   = "table"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrExpectedEvents          = "expected_events"
	logAttrRowsAffected            = "rows_affected"
	logAttrExpectedSequence        = "expected_sequence"
	logActionQuery                 = "query"
	logActionMaxSequence           = "max sequence number"
	logActionAppend                = "append"
	logActionSchema                = "schema"
	colEventType                   = "event_type"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	cteContext                     = "context"
	cteVals                        = "vals"
	dialectPostgres                = "postgres"
	aliasMaxSeq                    = "max_seq"
	castText                       = "?::text"
	castTimestamp                  = "?::timestamp with time zone"
	castJsonb                      = "?::jsonb"
	containsJsonb                  = "payload @> ?::jsonb"
	roundAtLeast                   = "(payload->>?)::int >= ?"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL
)`

const createPayloadIndexSQL = `CREATE INDEX IF NOT EXISTS %s ON %s USING gin (payload jsonb_path_ops)`

// Store appends and queries journal events in a PostgreSQL table.
type Store struct {
	db        adapters.DBAdapter
	tableName string
	logger    simulation.Logger
}

type queryResultRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber MaxSequenceNumberUint
}

// NewStoreFromPGXPool creates a Store on a pgx pool.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a Store on a database/sql pool.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a Store on a sqlx pool.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// TableName returns the table the Store works on.
func (s *Store) TableName() string {
	return s.tableName
}

// EnsureSchema creates the journal table and its payload index if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	table := pgx.Identifier{s.tableName}.Sanitize()
	index := pgx.Identifier{s.tableName + "_payload_idx"}.Sanitize()

	statements := []string{
		fmt.Sprintf(createTableSQL, table),
		fmt.Sprintf(createPayloadIndexSQL, index, table),
	}

	start := time.Now()

	for _, statement := range statements {
		if _, err := s.db.Exec(ctx, statement); err != nil {
			s.logError(logMsgDBExecFailed, logAttrError, err.Error(), logAttrQuery, statement)
			return errors.Join(ErrCreatingSchemaFailed, err)
		}

		s.logQueryWithDuration(statement, logActionSchema, time.Since(start))
	}

	s.logOperation(logMsgSchemaEnsured, logAttrTable, s.tableName, logAttrDurationMS, durationToMilliseconds(time.Since(start)))

	return nil
}

// Query returns the events matching filter in sequence order,
// together with the highest sequence number among them.
func (s *Store) Query(ctx context.Context, filter Filter) (StorableEvents, MaxSequenceNumberUint, error) {
	sqlQuery, buildErr := s.buildSelectQuery(filter)
	if buildErr != nil {
		s.logError(logMsgBuildSelectQueryFailed, logAttrError, buildErr.Error())
		return nil, 0, buildErr
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, 0, errors.Join(ErrQueryingEventsFailed, queryErr)
	}

	events, maxSequenceNumber, scanErr := s.processQueryResults(rows)
	if closeErr := s.closeRows(rows); scanErr == nil && closeErr != nil {
		scanErr = errors.Join(ErrQueryingEventsFailed, closeErr)
	}

	if scanErr != nil {
		return nil, 0, scanErr
	}

	s.logOperation(logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, durationToMilliseconds(duration))

	return events, maxSequenceNumber, nil
}

func (s *Store) processQueryResults(rows adapters.DBRows) (StorableEvents, MaxSequenceNumberUint, error) {
	row := queryResultRow{}
	events := make(StorableEvents, 0)
	maxSequenceNumber := MaxSequenceNumberUint(0)

	for rows.Next() {
		if err := rows.Scan(&row.eventType, &row.occurredAt, &row.payload, &row.metadata, &row.sequenceNumber); err != nil {
			s.logError(logMsgScanRowFailed, logAttrError, err.Error())
			return nil, 0, errors.Join(ErrScanningDBRowFailed, err)
		}

		event, err := BuildStorableEvent(row.eventType, row.occurredAt, row.payload, row.metadata)
		if err != nil {
			s.logError(logMsgBuildStorableEventFailed, logAttrError, err.Error(), logAttrEventType, row.eventType)
			return nil, 0, errors.Join(ErrBuildingStorableEventFailed, err)
		}

		events = append(events, event)
		maxSequenceNumber = row.sequenceNumber
	}

	return events, maxSequenceNumber, nil
}

// closeRows logs and returns errors reported when the rows are closed.
func (s *Store) closeRows(rows adapters.DBRows) error {
	err := rows.Close()
	if err != nil {
		s.logWarn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}

	return err
}

// MaxSequenceNumber returns the highest sequence number of the events matching filter, 0 if there are none.
func (s *Store) MaxSequenceNumber(ctx context.Context, filter Filter) (MaxSequenceNumberUint, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(goqu.COALESCE(goqu.MAX(colSequenceNumber), 0).As(aliasMaxSeq))

	sqlQuery, _, toSQLErr := s.addWhereClause(filter, selectStmt).ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildSelectQueryFailed, logAttrError, toSQLErr.Error())
		return 0, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, logActionMaxSequence, time.Since(start))

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(ErrQueryingEventsFailed, queryErr)
	}

	maxSequenceNumber := MaxSequenceNumberUint(0)

	var scanErr error
	if rows.Next() {
		if err := rows.Scan(&maxSequenceNumber); err != nil {
			s.logError(logMsgScanRowFailed, logAttrError, err.Error())
			scanErr = errors.Join(ErrScanningDBRowFailed, err)
		}
	}

	if closeErr := s.closeRows(rows); scanErr == nil && closeErr != nil {
		scanErr = errors.Join(ErrQueryingEventsFailed, closeErr)
	}

	if scanErr != nil {
		return 0, scanErr
	}

	return maxSequenceNumber, nil
}

// Append inserts one or more events in a single statement, but only while the
// highest sequence number matching filter is still expectedMaxSequenceNumber.
// Otherwise nothing is inserted and ErrConcurrencyConflict is returned.
func (s *Store) Append(
	ctx context.Context,
	filter Filter,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
	event StorableEvent,
	additionalEvents ...StorableEvent,
) error {

	allEvents := append(StorableEvents{event}, additionalEvents...)

	sqlQuery, buildErr := s.buildAppendQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildErr != nil {
		s.logError(logMsgBuildInsertQueryFailed, logAttrError, buildErr.Error(), logAttrEventCount, len(allEvents))
		return buildErr
	}

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		s.logOperation(logMsgConcurrencyConflict,
			logAttrExpectedEvents, len(allEvents),
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber)

		return ErrConcurrencyConflict
	}

	s.logOperation(logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, durationToMilliseconds(duration))

	return nil
}

func (s *Store) buildSelectQuery(filter Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := s.addWhereClause(filter, selectStmt).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildAppendQuery renders an INSERT ... SELECT guarded by a CTE holding the current max sequence number.
// Several events are combined with UNION ALL so they are inserted atomically.
func (s *Store) buildAppendQuery(
	events StorableEvents,
	filter Filter,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := s.addWhereClause(filter, builder.
		From(s.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)))

	valuesStmt := s.selectEventValues(builder, events[0])
	for _, event := range events[1:] {
		valuesStmt = valuesStmt.UnionAll(s.selectEventValues(builder, event))
	}

	insertStmt := builder.
		Insert(s.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.T(cteVals).Col(colEventType),
					goqu.T(cteVals).Col(colOccurredAt),
					goqu.T(cteVals).Col(colPayload),
					goqu.T(cteVals).Col(colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) selectEventValues(builder goqu.DialectWrapper, event StorableEvent) *goqu.SelectDataset {
	return builder.Select(
		goqu.L(castText, event.EventType).As(colEventType),
		goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
		goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
		goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
	)
}

func (s *Store) addWhereClause(filter Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	expressions := make([]exp.Expression, 0)

	if filter.RunID() != uuid.Nil {
		runPredicate, _ := jsoniter.ConfigFastest.Marshal(map[string]string{payloadKeyRunID: filter.RunID().String()})
		expressions = append(expressions, goqu.L(containsJsonb, string(runPredicate)))
	}

	if len(filter.EventTypes()) > 0 {
		expressions = append(expressions, goqu.C(colEventType).In(filter.EventTypes()))
	}

	if round, ok := filter.FromRound(); ok {
		expressions = append(expressions, goqu.L(roundAtLeast, payloadKeyRound, round))
	}

	if len(expressions) == 0 {
		return selectStmt
	}

	return selectStmt.Where(goqu.And(expressions...))
}

func (s *Store) logQueryWithDuration(sqlQuery, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (s *Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Store) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
