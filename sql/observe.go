package sql

import (
	"errors"
	"fmt"
	"time"
)

// ErrPanicked is passed to hooks when the wrapped operation panicked.
// The original panic continues after the hook returns.
var ErrPanicked = errors.New("sql: wrapped operation panicked")

// HookPanicError is the panic value raised when a hook panics after the
// wrapped operation already failed. Err is the original failure.
type HookPanicError struct {
	Value any
	Err   error
}

func (e *HookPanicError) Error() string {
	return fmt.Sprintf("sql: hook panicked (%v) after operation failed: %v", e.Value, e.Err)
}

func (e *HookPanicError) Unwrap() error {
	return e.Err
}

// observe runs op and then reports it through done exactly once.
//
// The outcome of op is captured before done runs and is returned unchanged.
// If op panics, done receives ErrPanicked and the original panic keeps
// unwinding; a panic raised by done at that point is dropped.
func observe[R any](op func() (R, error), done func(elapsed time.Duration, err error)) (res R, err error) {
	sw := startStopwatch()
	returned := false

	defer func() {
		if returned {
			return
		}
		ignorePanic(func() { done(sw.Elapsed(), ErrPanicked) })
	}()

	res, err = op()
	returned = true
	elapsed := sw.Elapsed()

	if err != nil {
		defer func() {
			if r := recover(); r != nil {
				panic(&HookPanicError{Value: r, Err: err})
			}
		}()
	}
	done(elapsed, err)

	return res, err
}

// observeErr is observe for operations without a result.
func observeErr(op func() error, done func(elapsed time.Duration, err error)) error {
	_, err := observe(func() (struct{}, error) {
		return struct{}{}, op()
	}, done)
	return err
}

func ignorePanic(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
