package util

import (
	"sync/atomic"
	"time"
)

// RateLimiter suppresses repeated events to at most once per window,
// process-wide. It backs the hash-entry engine's "LRU list very long"
// warning: a last-fired wall-clock timestamp (time.Now().UnixNano(), which
// carries no monotonic reading) compared against the current time.
// Atomicity of the compare-and-update is not required — at worst a
// concurrent race lets one extra warning through, which is harmless.
type RateLimiter struct {
	window   time.Duration
	lastFire atomic.Int64 // UnixNano
}

// NewRateLimiter returns a limiter that allows at most one event per window.
func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{window: window}
}

// Allow reports whether an event may fire now, and if so records the time.
func (r *RateLimiter) Allow() bool {
	now := time.Now().UnixNano()
	last := r.lastFire.Load()
	if now-last < int64(r.window) {
		return false
	}
	r.lastFire.Store(now)
	return true
}
