package server

import (
	"sync"
	"time"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
)

// loginLimiter is a fixed-window counter keyed by client IP. It only
// guards the credential endpoints.
type loginLimiter struct {
	mu      sync.Mutex
	clock   clock.Clock
	limit   int
	window  time.Duration
	buckets map[string]*windowBucket
}

type windowBucket struct {
	windowStart time.Time
	count       int
}

func newLoginLimiter(clk clock.Clock, limit int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		clock:   clk,
		limit:   limit,
		window:  window,
		buckets: make(map[string]*windowBucket),
	}
}

func (l *loginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	bucket, ok := l.buckets[key]
	if !ok || now.Sub(bucket.windowStart) >= l.window {
		l.buckets[key] = &windowBucket{windowStart: now, count: 1}
		return true
	}
	if bucket.count >= l.limit {
		return false
	}
	bucket.count++
	return true
}
