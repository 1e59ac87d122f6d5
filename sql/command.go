package sql

import (
	"context"
	"database/sql/driver"
	"time"
)

// CommandKind tells which operation a Command describes.
type CommandKind int

const (
	CommandExec CommandKind = iota
	CommandQuery
	CommandBegin
	CommandCommit
	CommandRollback
)

func (k CommandKind) String() string {
	switch k {
	case CommandExec:
		return "exec"
	case CommandQuery:
		return "query"
	case CommandBegin:
		return "begin"
	case CommandCommit:
		return "commit"
	case CommandRollback:
		return "rollback"
	default:
		return "unknown"
	}
}

// Command describes one command execution on an instrumented connection.
// It is only valid for the duration of the hook call that receives it.
type Command[T any] struct {
	conn     *Conn[T]
	kind     CommandKind
	text     string
	args     []driver.NamedValue
	prepared bool
}

func newCommand[T any](
	conn *Conn[T],
	kind CommandKind,
	text string,
	args []driver.NamedValue,
	prepared bool,
) *Command[T] {
	return &Command[T]{
		conn:     conn,
		kind:     kind,
		text:     text,
		args:     args,
		prepared: prepared,
	}
}

// Conn returns the connection the command ran on.
func (c *Command[T]) Conn() *Conn[T] {
	return c.conn
}

// Kind returns the kind of operation.
func (c *Command[T]) Kind() CommandKind {
	return c.kind
}

// Text returns the command text as sent to the driver.
func (c *Command[T]) Text() string {
	return c.text
}

// Args returns the arguments bound to this execution.
func (c *Command[T]) Args() []driver.NamedValue {
	return c.args
}

// Prepared reports whether the command ran through a prepared statement.
func (c *Command[T]) Prepared() bool {
	return c.prepared
}

// Params returns the display parameters of this execution.
// See ExtractParams.
func (c *Command[T]) Params(hideValues bool) Params {
	return ExtractParams(c.args, hideValues)
}

// reporter returns the observe callback that reports this command.
// An inner driver.ErrSkip means nothing ran, so nothing is reported.
func (c *Command[T]) reporter(ctx context.Context) func(time.Duration, error) {
	return func(elapsed time.Duration, err error) {
		if err == driver.ErrSkip { //nolint:errorlint // database/sql compares ErrSkip by identity
			return
		}
		c.conn.hooks().CommandExecuted(ctx, c, c.conn.value, elapsed, err)
	}
}
