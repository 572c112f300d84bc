package scheduler

import (
	"slices"
	"sync"
	"time"
)

// Manual is a scheduler driven by Advance. Callbacks run on the goroutine
// calling Advance, in due order; ties run in scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTimer
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, due: m.now + d, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of callbacks not yet run or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d and runs every callback that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	now := m.now

	var due []*manualTimer
	m.tasks = slices.DeleteFunc(m.tasks, func(t *manualTimer) bool {
		if t.due <= now {
			due = append(due, t)
			return true
		}
		return false
	})
	m.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *manualTimer) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		return a.seq - b.seq
	})
	for _, t := range due {
		t.f()
	}
}

type manualTimer struct {
	m   *Manual
	due time.Duration
	seq int
	f   func()
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	before := len(t.m.tasks)
	t.m.tasks = slices.DeleteFunc(t.m.tasks, func(x *manualTimer) bool { return x == t })
	return len(t.m.tasks) != before
}
