package core

import (
	"sort"
	"sync"
	"time"
)

type (
	// TaskHandle identifies a scheduled task and allows cancelling it
	// before it fires. Cancelling an already-fired task is a no-op.
	TaskHandle interface {
		Cancel()
	}

	// Scheduler runs a function once after a delay.
	// It replaces ad-hoc timers so that deferred state transitions can be
	// cancelled on teardown and driven deterministically in tests.
	Scheduler interface {
		After(delay time.Duration, fn func()) TaskHandle
	}
)

// timerScheduler defers tasks onto real timers.
type timerScheduler struct{}

func NewScheduler() Scheduler {
	return timerScheduler{}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() { h.t.Stop() }

func (timerScheduler) After(delay time.Duration, fn func()) TaskHandle {
	return timerHandle{t: time.AfterFunc(delay, fn)}
}

// ManualScheduler queues tasks and only runs them when its virtual clock
// is advanced; for tests.
type ManualScheduler struct {
	mutex sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	sched     *ManualScheduler
	due       time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() {
	t.sched.mutex.Lock()
	t.cancelled = true
	t.sched.mutex.Unlock()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) After(delay time.Duration, fn func()) TaskHandle {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task := &manualTask{sched: s, due: s.now + delay, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves the virtual clock forward and runs every due task in
// scheduling order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mutex.Lock()
	s.now += d
	now := s.now

	due := make([]*manualTask, 0, len(s.tasks))
	rest := s.tasks[:0]
	for _, task := range s.tasks {
		if task.due <= now && !task.cancelled {
			due = append(due, task)
		} else if !task.cancelled {
			rest = append(rest, task)
		}
	}
	s.tasks = rest
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	s.mutex.Unlock()

	for _, task := range due {
		task.fn()
	}
}

// Pending returns the number of queued, uncancelled tasks.
func (s *ManualScheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var n int
	for _, task := range s.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}
