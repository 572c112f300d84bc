package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQueueClosed is returned by RunNext after Close.
var ErrQueueClosed = errors.New("scheduler queue closed")

// Queue waits on a real clock but hands due callbacks back to the owner,
// which runs them with RunNext on its own goroutine. It keeps callbacks on the
// same logical thread as the code that scheduled them.
type Queue struct {
	mu      sync.Mutex
	pending int
	ready   chan func()
	done    chan struct{}
	closed  bool
}

func NewQueue() *Queue {
	return &Queue{
		ready: make(chan func()),
		done:  make(chan struct{}),
	}
}

// AfterFunc schedules f to become runnable after d.
func (q *Queue) AfterFunc(d time.Duration, f func()) Timer {
	q.mu.Lock()
	defer q.mu.Unlock()

	qt := &queueTimer{q: q}
	if q.closed {
		return qt
	}
	q.pending++
	qt.active = true
	qt.t = time.AfterFunc(d, func() {
		select {
		case q.ready <- qt.wrap(f):
		case <-q.done:
		}
	})
	return qt
}

// Pending returns the number of callbacks scheduled but not yet run or stopped.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// RunNext blocks until a callback is due and runs it on the caller's
// goroutine. It returns ctx.Err() if ctx ends first.
func (q *Queue) RunNext(ctx context.Context) error {
	select {
	case f := <-q.ready:
		f()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		return ErrQueueClosed
	}
}

// Drain runs callbacks until none are pending or ctx ends.
func (q *Queue) Drain(ctx context.Context, after func()) error {
	for q.Pending() > 0 {
		if err := q.RunNext(ctx); err != nil {
			return err
		}
		if after != nil {
			after()
		}
	}
	return nil
}

// Close stops every pending timer and releases goroutines waiting to
// deliver callbacks. It is safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.pending = 0
	close(q.done)
}

type queueTimer struct {
	q      *Queue
	t      *time.Timer
	active bool
}

// wrap marks the timer finished when the callback is handed over.
func (qt *queueTimer) wrap(f func()) func() {
	return func() {
		qt.q.mu.Lock()
		if qt.active {
			qt.active = false
			qt.q.pending--
		}
		qt.q.mu.Unlock()
		f()
	}
}

func (qt *queueTimer) Stop() bool {
	qt.q.mu.Lock()
	defer qt.q.mu.Unlock()
	if !qt.active {
		return false
	}
	if qt.q.closed {
		qt.active = false
		return qt.t.Stop()
	}
	if !qt.t.Stop() {
		// Already fired and waiting for RunNext; it will still run.
		return false
	}
	qt.active = false
	qt.q.pending--
	return true
}
