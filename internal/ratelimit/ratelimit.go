// Package ratelimit implements fixed-window admission control.
package ratelimit

import "github.com/petasbytes/nanda-agents/internal/clock"

// Limiter admits up to limit calls per 60-second wall-clock window.
// The window is keyed by floor(unix/60); the boundary is abrupt, so a
// full burst is allowed on either side of it. State is in-memory only:
// a process restart deliberately resets the window.
//
// Limiter is not safe for concurrent use; the caller serializes access
// (the agent holds its own lock around admit-and-handle).
type Limiter struct {
	limit  int
	clk    clock.Clock
	bucket int64
	count  int
}

// New returns a Limiter allowing limit admissions per minute.
func New(limit int, clk clock.Clock) *Limiter {
	return &Limiter{limit: limit, clk: clk}
}

// Admit reports whether the current call is allowed in this window.
// A denied call does not consume capacity.
func (l *Limiter) Admit() bool {
	now := l.clk.Now().Unix() / 60
	if now != l.bucket {
		l.bucket = now
		l.count = 0
	}
	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Limit returns the per-minute admission limit.
func (l *Limiter) Limit() int { return l.limit }
