package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowsUpToMax(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.CanProceed(), "attempt %d should be allowed", i)
		l.RecordAttempt()
	}
	assert.False(t, l.CanProceed(), "fourth attempt should be rejected")
}

func TestWindowReset(t *testing.T) {
	l := New(2, time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }
	l.windowStart = current

	l.RecordAttempt()
	l.RecordAttempt()
	assert.False(t, l.CanProceed())

	// Advance past the window; the counter resets.
	current = current.Add(61 * time.Second)
	assert.True(t, l.CanProceed())
	l.RecordAttempt()
	assert.True(t, l.CanProceed())
}

func TestBoundaryNotReset(t *testing.T) {
	l := New(1, time.Minute)

	current := time.Now()
	l.now = func() time.Time { return current }
	l.windowStart = current

	l.RecordAttempt()

	// Exactly at the window edge the old window still applies.
	current = current.Add(time.Minute)
	assert.False(t, l.CanProceed())

	current = current.Add(time.Nanosecond)
	assert.True(t, l.CanProceed())
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, 60, l.max)
	assert.Equal(t, time.Minute, l.window)
}

func TestConcurrentAttempts(t *testing.T) {
	l := New(1000, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.RecordAttempt()
			}
		}()
	}
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Equal(t, 500, l.count)
}
