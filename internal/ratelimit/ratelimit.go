package ratelimit

import (
	"sync"
	"time"
)

// Limiter caps Gemini calls per day so heavy reading sessions stay inside
// the free API tier. The counter resets 24h after the first request of
// the window.
type Limiter struct {
	mu        sync.Mutex
	max       int
	count     int
	resetTime time.Time
}

// New creates a Limiter allowing max requests per day. max <= 0 disables
// the limit.
func New(max int) *Limiter {
	return &Limiter{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another request fits the daily budget and counts
// it if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.resetTime) {
		l.count = 0
		l.resetTime = time.Now().Add(24 * time.Hour)
	}

	if l.max > 0 && l.count >= l.max {
		return false
	}
	l.count++
	return true
}

// Used returns the requests consumed in the current window.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
