package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualSchedulerAdvance(t *testing.T) {
	s := NewManualScheduler()

	var fired []string
	s.After(2*time.Second, func() { fired = append(fired, "b") })
	s.After(time.Second, func() { fired = append(fired, "a") })
	s.After(5*time.Second, func() { fired = append(fired, "c") })

	s.Advance(3 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired, "due tasks run in scheduling order")
	assert.Equal(t, 1, s.Pending())

	s.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()

	var fired bool
	handle := s.After(time.Second, func() { fired = true })
	handle.Cancel()

	s.Advance(time.Minute)
	assert.False(t, fired, "cancelled task never runs")
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerConcurrentCancel(t *testing.T) {
	s := NewManualScheduler()

	handles := make([]TaskHandle, 100)
	for i := range handles {
		handles[i] = s.After(time.Second, func() {})
	}

	var wg sync.WaitGroup
	wg.Add(len(handles) + 1)
	for _, h := range handles {
		go func(h TaskHandle) {
			defer wg.Done()
			h.Cancel()
		}(h)
	}
	go func() {
		defer wg.Done()
		s.Advance(2 * time.Second)
	}()
	wg.Wait()

	assert.Zero(t, s.Pending())
}
