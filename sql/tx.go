package sql

import (
	"context"
	"database/sql/driver"
)

// Compile-time interface check.
var _ driver.Tx = (*Tx[any])(nil)

// Tx is an instrumented driver.Tx. Commit and Rollback are reported as
// commands of kind CommandCommit and CommandRollback.
type Tx[T any] struct {
	tx   driver.Tx
	conn *Conn[T]
}

// newTx creates a new instrumented transaction.
func newTx[T any](conn *Conn[T], tx driver.Tx) *Tx[T] {
	return &Tx[T]{
		tx:   tx,
		conn: conn,
	}
}

// Commit implements driver.Tx.
func (t *Tx[T]) Commit() error {
	cmd := newCommand(t.conn, CommandCommit, "COMMIT", nil, false)
	return observeErr(t.tx.Commit, cmd.reporter(context.Background()))
}

// Rollback implements driver.Tx.
func (t *Tx[T]) Rollback() error {
	cmd := newCommand(t.conn, CommandRollback, "ROLLBACK", nil, false)
	return observeErr(t.tx.Rollback, cmd.reporter(context.Background()))
}
