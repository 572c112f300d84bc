// Package scheduler abstracts delayed callbacks so UI logic that hides or
// expires something after a delay can run on a real clock, be delivered back
// to a request goroutine, or be driven manually in tests.
package scheduler

import (
	"time"
)

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already ran or was stopped.
	Stop() bool
}

// Real schedules callbacks with time.AfterFunc. Callbacks run on their own
// goroutine.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
