package sql

import (
	"context"
	"database/sql/driver"
)

// Compile-time interface checks.
var (
	_ driver.Stmt              = (*Stmt[any])(nil)
	_ driver.StmtExecContext   = (*Stmt[any])(nil)
	_ driver.StmtQueryContext  = (*Stmt[any])(nil)
	_ driver.NamedValueChecker = (*Stmt[any])(nil)
)

// Stmt is an instrumented driver.Stmt. Every execution is reported as a
// CommandExecuted event carrying the statement's connection value.
type Stmt[T any] struct {
	stmt  driver.Stmt
	conn  *Conn[T]
	query string
}

// newStmt creates a new instrumented statement.
func newStmt[T any](conn *Conn[T], stmt driver.Stmt, query string) *Stmt[T] {
	return &Stmt[T]{
		stmt:  stmt,
		conn:  conn,
		query: query,
	}
}

// Raw returns the wrapped statement.
func (s *Stmt[T]) Raw() driver.Stmt {
	return s.stmt
}

// Close implements driver.Stmt.
func (s *Stmt[T]) Close() error {
	return s.stmt.Close()
}

// NumInput implements driver.Stmt.
func (s *Stmt[T]) NumInput() int {
	return s.stmt.NumInput()
}

// Exec implements driver.Stmt.
// Deprecated: Use ExecContext instead. This exists for driver.Stmt interface compatibility.
func (s *Stmt[T]) Exec(args []driver.Value) (driver.Result, error) {
	ctx := context.Background()
	cmd := newCommand(s.conn, CommandExec, s.query, valueToNamedValue(args), true)

	return observe(
		func() (driver.Result, error) {
			return s.stmt.Exec(args) //nolint:staticcheck // Required for driver.Stmt interface
		},
		cmd.reporter(ctx),
	)
}

// Query implements driver.Stmt.
// Deprecated: Use QueryContext instead. This exists for driver.Stmt interface compatibility.
func (s *Stmt[T]) Query(args []driver.Value) (driver.Rows, error) {
	ctx := context.Background()
	cmd := newCommand(s.conn, CommandQuery, s.query, valueToNamedValue(args), true)

	return observe(
		func() (driver.Rows, error) {
			return s.stmt.Query(args) //nolint:staticcheck // Required for driver.Stmt interface
		},
		cmd.reporter(ctx),
	)
}

// ExecContext implements driver.StmtExecContext.
func (s *Stmt[T]) ExecContext(
	ctx context.Context,
	args []driver.NamedValue,
) (driver.Result, error) {
	cmd := newCommand(s.conn, CommandExec, s.query, args, true)

	return observe(
		func() (driver.Result, error) {
			if execer, ok := s.stmt.(driver.StmtExecContext); ok {
				return execer.ExecContext(ctx, args)
			}
			// Fallback to non-context version
			return s.stmt.Exec(namedValueToValue(args)) //nolint:staticcheck // Fallback for older drivers
		},
		cmd.reporter(ctx),
	)
}

// QueryContext implements driver.StmtQueryContext.
func (s *Stmt[T]) QueryContext(
	ctx context.Context,
	args []driver.NamedValue,
) (driver.Rows, error) {
	cmd := newCommand(s.conn, CommandQuery, s.query, args, true)

	return observe(
		func() (driver.Rows, error) {
			if queryer, ok := s.stmt.(driver.StmtQueryContext); ok {
				return queryer.QueryContext(ctx, args)
			}
			// Fallback to non-context version
			return s.stmt.Query(namedValueToValue(args)) //nolint:staticcheck // Fallback for older drivers
		},
		cmd.reporter(ctx),
	)
}

// CheckNamedValue implements driver.NamedValueChecker.
func (s *Stmt[T]) CheckNamedValue(nv *driver.NamedValue) error {
	if checker, ok := s.stmt.(driver.NamedValueChecker); ok {
		return checker.CheckNamedValue(nv)
	}
	return s.conn.CheckNamedValue(nv)
}

// namedValueToValue converts NamedValue slice to Value slice.
func namedValueToValue(named []driver.NamedValue) []driver.Value {
	values := make([]driver.Value, len(named))
	for i, nv := range named {
		values[i] = nv.Value
	}
	return values
}

// valueToNamedValue converts Value slice to positional NamedValue slice.
func valueToNamedValue(values []driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(values))
	for i, v := range values {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return named
}
