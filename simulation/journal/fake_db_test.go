package journal_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal/internal/adapters"
)

// fakeDB is a DBAdapter serving scripted rows and results.
type fakeDB struct {
	mu           sync.Mutex
	queries      []string
	execs        []string
	rowSets      [][][]any
	queryErr     error
	execErr      error
	rowsAffected func(query string) int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		rowsAffected: func(string) int64 { return 1 },
	}
}

// withRows queues the rows the next Query call returns.
func (f *fakeDB) withRows(rows ...[]any) *fakeDB {
	f.rowSets = append(f.rowSets, rows)
	return f
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	rows := &fakeRows{}
	if len(f.rowSets) > 0 {
		rows.rows = f.rowSets[0]
		f.rowSets = f.rowSets[1:]
	}

	return rows, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.execs = append(f.execs, query)
	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: f.rowsAffected(query)}, nil
}

func (f *fakeDB) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queries) == 0 {
		return ""
	}

	return f.queries[len(f.queries)-1]
}

func (f *fakeDB) lastExec() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.execs) == 0 {
		return ""
	}

	return f.execs[len(f.execs)-1]
}

type fakeRows struct {
	rows    [][]any
	current []any
	closed  bool
}

func (r *fakeRows) Next() bool {
	if len(r.rows) == 0 {
		return false
	}

	r.current = r.rows[0]
	r.rows = r.rows[1:]

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != len(r.current) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r.current))
	}

	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = r.current[i].(string)
		case *time.Time:
			*target = r.current[i].(time.Time)
		case *[]byte:
			*target = r.current[i].([]byte)
		case *uint:
			*target = r.current[i].(uint)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}

	return nil
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
