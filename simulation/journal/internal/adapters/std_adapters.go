package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SQLAdapter implements DBAdapter on top of a database/sql pool.
type SQLAdapter struct {
	db *sql.DB
}

func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (a *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	return queryStd(ctx, a.db, query)
}

func (a *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return execStd(ctx, a.db, query)
}

// SQLXAdapter implements DBAdapter on top of a sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

func (a *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	return queryStd(ctx, a.db, query)
}

func (a *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	return execStd(ctx, a.db, query)
}

// stdDB is what sql.DB and sqlx.DB have in common.
type stdDB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func queryStd(ctx context.Context, db stdDB, query string) (DBRows, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return stdRows{rows: rows}, nil
}

func execStd(ctx context.Context, db stdDB, query string) (DBResult, error) {
	result, err := db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return result, nil
}

type stdRows struct {
	rows *sql.Rows
}

func (r stdRows) Next() bool {
	return r.rows.Next()
}

func (r stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Close reports iteration errors as well, matching pgxRows.
func (r stdRows) Close() error {
	return errors.Join(r.rows.Err(), r.rows.Close())
}
