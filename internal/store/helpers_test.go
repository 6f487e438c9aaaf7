package store

import (
	"context"
	"fmt"
	"reflect"

	"crowdcube/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB implements Querier in memory. Query responses are consumed in
// FIFO order so multi-call operations can be scripted.
type fakeDB struct {
	queryResults []*fakeRows
	queryErr     error
	execTag      pgconn.CommandTag
	execErr      error

	queries   []string
	queryArgs [][]any
	execs     []string
	execArgs  [][]any
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	f.queryArgs = append(f.queryArgs, args)

	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.queryResults) == 0 {
		return &fakeRows{}, nil
	}

	rows := f.queryResults[0]
	f.queryResults = f.queryResults[1:]
	return rows, nil
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	f.execArgs = append(f.execArgs, args)
	return f.execTag, f.execErr
}

type fakeRows struct {
	columns []string
	rows    [][]any
	idx     int
	closed  bool
}

func newFakeRows(columns []string, rows ...[]any) *fakeRows {
	return &fakeRows{columns: columns, rows: rows}
}

// rowFor flattens a struct into column order so fakeRows hands pgxscan the
// same shape a live query would.
func rowFor(columns []string, entity any) []any {
	m := utils.StructToMap(entity)
	row := make([]any, 0, len(columns))
	for _, column := range columns {
		row = append(row, m[column])
	}
	return row
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.rows) {
		return pgx.ErrNoRows
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("unexpected scan args: got %d, want %d", len(dest), len(row))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, column := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: column}
	}
	return fds
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }

func (r *fakeRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in fake rows")
}
