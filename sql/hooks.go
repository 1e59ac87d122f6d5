package sql

import (
	"context"
	"time"
)

// Hooks observes instrumented connections and the commands executed on them.
//
// The decorators call a hook exactly once per wrapped operation, after the
// inner call has returned, whether it succeeded or not. err is the inner
// outcome (ErrPanicked if the inner call panicked). Hooks cannot change that
// outcome.
//
// value is the caller-supplied value attached to the connection when it was
// opened. It is shared, read-only, by every command created from it.
//
// Hooks may be called concurrently for different connections and must do
// their own synchronisation.
type Hooks[T any] interface {
	// ConnectionOpened is called after the inner connection was opened.
	// On failure conn.Raw() is nil.
	ConnectionOpened(ctx context.Context, conn *Conn[T], value T, elapsed time.Duration, err error)

	// ConnectionClosed is called after the inner connection was closed.
	ConnectionClosed(ctx context.Context, conn *Conn[T], value T, elapsed time.Duration, err error)

	// CommandExecuted is called after a command was executed.
	CommandExecuted(ctx context.Context, cmd *Command[T], value T, elapsed time.Duration, err error)
}

// NoopHooks implements Hooks and does nothing. Embed it to implement only
// the events you care about.
type NoopHooks[T any] struct{}

// ConnectionOpened implements Hooks.
func (NoopHooks[T]) ConnectionOpened(context.Context, *Conn[T], T, time.Duration, error) {}

// ConnectionClosed implements Hooks.
func (NoopHooks[T]) ConnectionClosed(context.Context, *Conn[T], T, time.Duration, error) {}

// CommandExecuted implements Hooks.
func (NoopHooks[T]) CommandExecuted(context.Context, *Command[T], T, time.Duration, error) {}

// ComposeHooks returns Hooks that call each of hooks in order.
// Nil entries are skipped.
//
// Example:
//
//	hooks := sqllog.ComposeHooks[string](loggingHook, tracingHook, metricsHook)
func ComposeHooks[T any](hooks ...Hooks[T]) Hooks[T] {
	filtered := make(multiHooks[T], 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

type multiHooks[T any] []Hooks[T]

func (m multiHooks[T]) ConnectionOpened(
	ctx context.Context,
	conn *Conn[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	for _, h := range m {
		h.ConnectionOpened(ctx, conn, value, elapsed, err)
	}
}

func (m multiHooks[T]) ConnectionClosed(
	ctx context.Context,
	conn *Conn[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	for _, h := range m {
		h.ConnectionClosed(ctx, conn, value, elapsed, err)
	}
}

func (m multiHooks[T]) CommandExecuted(
	ctx context.Context,
	cmd *Command[T],
	value T,
	elapsed time.Duration,
	err error,
) {
	for _, h := range m {
		h.CommandExecuted(ctx, cmd, value, elapsed, err)
	}
}

// ValueFunc produces the value attached to a new connection from the
// context of the call that opened it.
type ValueFunc[T any] func(ctx context.Context) T

// StaticValue returns a ValueFunc that attaches v to every connection.
func StaticValue[T any](v T) ValueFunc[T] {
	return func(context.Context) T { return v }
}
