package sql

import "time"

// stopwatch measures how long one wrapped operation took.
//
// time.Now carries a monotonic clock reading, so Elapsed is unaffected by
// wall clock adjustments made while the operation runs.
type stopwatch struct {
	start time.Time
}

// startStopwatch starts a new measurement.
func startStopwatch() stopwatch {
	return stopwatch{start: time.Now()}
}

// Elapsed returns the time since the stopwatch was started. Never negative.
func (s stopwatch) Elapsed() time.Duration {
	d := time.Since(s.start)
	if d < 0 {
		return 0
	}
	return d
}
