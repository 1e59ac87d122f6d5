package sql

import (
	"context"
	"database/sql/driver"
	"time"
)

// Compile-time interface checks.
var (
	_ driver.Conn               = (*Conn[any])(nil)
	_ driver.ConnPrepareContext = (*Conn[any])(nil)
	_ driver.ConnBeginTx        = (*Conn[any])(nil)
	_ driver.ExecerContext      = (*Conn[any])(nil)
	_ driver.QueryerContext     = (*Conn[any])(nil)
	_ driver.Pinger             = (*Conn[any])(nil)
	_ driver.SessionResetter    = (*Conn[any])(nil)
	_ driver.Validator          = (*Conn[any])(nil)
	_ driver.NamedValueChecker  = (*Conn[any])(nil)
)

// ConnectionInfo describes a connection to a ConnectionProjector and to
// hooks. Conn is nil if the connection failed to open.
type ConnectionInfo struct {
	Conn         driver.Conn
	DSN          string
	DBSystem     string
	DBName       string
	InstanceName string
}

// Conn is an instrumented driver.Conn.
//
// It reports ConnectionOpened and ConnectionClosed, and wraps every
// statement it prepares so that executions are reported as well. It keeps
// no state besides the inner connection and its value.
type Conn[T any] struct {
	conn      driver.Conn
	value     T
	connector *Connector[T]
}

func newConn[T any](connector *Connector[T], value T) *Conn[T] {
	return &Conn[T]{
		value:     value,
		connector: connector,
	}
}

// Raw returns the wrapped connection.
func (c *Conn[T]) Raw() driver.Conn {
	return c.conn
}

// Value returns the value attached to the connection when it was opened.
func (c *Conn[T]) Value() T {
	return c.value
}

// Info returns the connection description handed to projectors.
func (c *Conn[T]) Info() ConnectionInfo {
	cfg := c.connector.driver.cfg
	return ConnectionInfo{
		Conn:         c.conn,
		DSN:          c.connector.dsn,
		DBSystem:     cfg.DBSystem,
		DBName:       cfg.DBName,
		InstanceName: cfg.InstanceName,
	}
}

func (c *Conn[T]) hooks() Hooks[T] {
	return c.connector.driver.hooks
}

// open opens the inner connection and reports it.
func (c *Conn[T]) open(ctx context.Context) error {
	return observeErr(
		func() error {
			conn, err := c.connector.connect(ctx)
			if err != nil {
				return err
			}
			c.conn = conn
			return nil
		},
		func(elapsed time.Duration, err error) {
			c.hooks().ConnectionOpened(ctx, c, c.value, elapsed, err)
		},
	)
}

// Close implements driver.Conn.
func (c *Conn[T]) Close() error {
	ctx := context.Background()
	return observeErr(
		c.conn.Close,
		func(elapsed time.Duration, err error) {
			c.hooks().ConnectionClosed(ctx, c, c.value, elapsed, err)
		},
	)
}

// Prepare implements driver.Conn.
func (c *Conn[T]) Prepare(query string) (driver.Stmt, error) {
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		return nil, err
	}
	return newStmt(c, stmt, query), nil
}

// PrepareContext implements driver.ConnPrepareContext.
func (c *Conn[T]) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	var stmt driver.Stmt
	var err error

	if preparer, ok := c.conn.(driver.ConnPrepareContext); ok {
		stmt, err = preparer.PrepareContext(ctx, query)
	} else {
		stmt, err = c.conn.Prepare(query)
	}

	if err != nil {
		return nil, err
	}
	return newStmt(c, stmt, query), nil
}

// Begin implements driver.Conn.
// Deprecated: Use BeginTx instead. This exists for driver.Conn interface compatibility.
func (c *Conn[T]) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx implements driver.ConnBeginTx. Starting the transaction is
// reported as a command with kind CommandBegin.
func (c *Conn[T]) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	cmd := newCommand(c, CommandBegin, "BEGIN", nil, false)

	return observe(
		func() (driver.Tx, error) {
			var tx driver.Tx
			var err error

			if beginner, ok := c.conn.(driver.ConnBeginTx); ok {
				tx, err = beginner.BeginTx(ctx, opts)
			} else {
				tx, err = c.conn.Begin() //nolint:staticcheck // Fallback for older drivers
			}

			if err != nil {
				return nil, err
			}
			return newTx(c, tx), nil
		},
		cmd.reporter(ctx),
	)
}

// ExecContext implements driver.ExecerContext.
//
// If the inner connection cannot execute directly, driver.ErrSkip is
// returned without reporting anything, and database/sql falls back to an
// instrumented prepared statement.
func (c *Conn[T]) ExecContext(
	ctx context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Result, error) {
	execer, ok := c.conn.(driver.ExecerContext)
	if !ok {
		return nil, driver.ErrSkip
	}

	cmd := newCommand(c, CommandExec, query, args, false)
	return observe(
		func() (driver.Result, error) {
			return execer.ExecContext(ctx, query, args)
		},
		cmd.reporter(ctx),
	)
}

// QueryContext implements driver.QueryerContext.
//
// The command is reported when the inner query returns, before the rows
// are consumed.
func (c *Conn[T]) QueryContext(
	ctx context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Rows, error) {
	queryer, ok := c.conn.(driver.QueryerContext)
	if !ok {
		return nil, driver.ErrSkip
	}

	cmd := newCommand(c, CommandQuery, query, args, false)
	return observe(
		func() (driver.Rows, error) {
			return queryer.QueryContext(ctx, query, args)
		},
		cmd.reporter(ctx),
	)
}

// Ping implements driver.Pinger.
func (c *Conn[T]) Ping(ctx context.Context) error {
	if pinger, ok := c.conn.(driver.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// ResetSession implements driver.SessionResetter.
func (c *Conn[T]) ResetSession(ctx context.Context) error {
	if resetter, ok := c.conn.(driver.SessionResetter); ok {
		return resetter.ResetSession(ctx)
	}
	return nil
}

// IsValid implements driver.Validator.
func (c *Conn[T]) IsValid() bool {
	if validator, ok := c.conn.(driver.Validator); ok {
		return validator.IsValid()
	}
	return true
}

// CheckNamedValue implements driver.NamedValueChecker.
// It defers to the inner connection, or to database/sql's default
// conversion when the inner connection has no checker.
func (c *Conn[T]) CheckNamedValue(nv *driver.NamedValue) error {
	if checker, ok := c.conn.(driver.NamedValueChecker); ok {
		return checker.CheckNamedValue(nv)
	}
	return driver.ErrSkip
}
