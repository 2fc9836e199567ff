package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps paid backend calls per fixed time window. The window is
// fixed, not sliding: when its age exceeds the configured length the
// counter resets, which permits short bursts across a boundary.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// New creates a Limiter allowing maxPerWindow attempts per window.
func New(maxPerWindow int, window time.Duration) *Limiter {
	if maxPerWindow <= 0 {
		maxPerWindow = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &Limiter{
		max:    maxPerWindow,
		window: window,
		now:    time.Now,
	}
	l.windowStart = l.now()
	return l
}

// rollLocked resets the counter when the window has aged out. Caller holds l.mu.
func (l *Limiter) rollLocked() {
	if now := l.now(); now.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = now
	}
}

// CanProceed reports whether another attempt fits in the current window.
func (l *Limiter) CanProceed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollLocked()
	return l.count < l.max
}

// RecordAttempt counts one backend call attempt against the window.
func (l *Limiter) RecordAttempt() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollLocked()
	l.count++
}
