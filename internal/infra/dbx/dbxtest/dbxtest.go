// Package dbxtest provides in-memory fakes of dbx.Querier for repository tests.
package dbxtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier routes each call to the matching func field. Unset funcs fail loudly.
type Querier struct {
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if q.ExecFunc == nil {
		return pgconn.CommandTag{}, fmt.Errorf("dbxtest: ExecFunc not set")
	}
	return q.ExecFunc(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if q.QueryFunc == nil {
		return nil, fmt.Errorf("dbxtest: QueryFunc not set")
	}
	return q.QueryFunc(ctx, sql, args...)
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if q.QueryRowFunc == nil {
		return Row{Err: fmt.Errorf("dbxtest: QueryRowFunc not set")}
	}
	return q.QueryRowFunc(ctx, sql, args...)
}

// Tag builds a command tag such as "DELETE 1".
func Tag(s string) pgconn.CommandTag {
	return pgconn.NewCommandTag(s)
}

// Row scans Values into the destinations, or returns Err.
type Row struct {
	Values []any
	Err    error
}

func (r Row) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Values)
}

// Rows iterates over Data one row at a time.
type Rows struct {
	Data    [][]any
	ErrOnce error
	idx     int
	closed  bool
}

// NewRows returns Rows over the given data.
func NewRows(data ...[]any) *Rows {
	return &Rows{Data: data}
}

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Closed() bool                                 { return r.closed }
func (r *Rows) Err() error                                   { return r.ErrOnce }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.Data) {
		return fmt.Errorf("dbxtest: scan without active row")
	}
	return assign(dest, r.Data[r.idx-1])
}

func (r *Rows) Values() ([]any, error) {
	if r.idx == 0 || r.idx > len(r.Data) {
		return nil, fmt.Errorf("dbxtest: values without active row")
	}
	return r.Data[r.idx-1], nil
}

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dbxtest: scan dest mismatch: got %d want %d", len(dest), len(values))
	}
	for i, value := range values {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Ptr || dv.IsNil() {
			return fmt.Errorf("dbxtest: dest %d not a pointer", i)
		}
		target := dv.Elem()
		if value == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		vv := reflect.ValueOf(value)
		switch {
		case vv.Type().AssignableTo(target.Type()):
			target.Set(vv)
		case target.Kind() == reflect.Ptr && vv.Type().ConvertibleTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(vv.Convert(target.Type().Elem()))
			target.Set(p)
		case vv.Type().ConvertibleTo(target.Type()):
			target.Set(vv.Convert(target.Type()))
		default:
			return fmt.Errorf("dbxtest: cannot assign %T to %s", value, target.Type())
		}
	}
	return nil
}
