package middleware

import (
	"context"
	"sync"
	"time"
)

// RateLimiter decides whether a caller identified by key may proceed.
// Implementations backed by a shared store can replace the in-memory one
// when several instances serve the public endpoints.
type RateLimiter interface {
	Allow(key string) bool
}

type window struct {
	start time.Time
	count int
}

// FixedWindowLimiter allows limit requests per key in each fixed window
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	state map[string]*window
}

// NewFixedWindowLimiter creates a limiter of limit requests per window
func NewFixedWindowLimiter(limit int, period time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  limit,
		window: period,
		now:    time.Now,
		state:  make(map[string]*window),
	}
}

// Allow counts a request for key and reports whether it is within the limit
func (l *FixedWindowLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.state[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.state[key] = &window{start: now, count: 1}
		return l.limit > 0
	}
	w.count++
	return w.count <= l.limit
}

// Evict drops windows that have expired
func (l *FixedWindowLimiter) Evict() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.state {
		if now.Sub(w.start) >= l.window {
			delete(l.state, key)
			removed++
		}
	}
	return removed
}

// RunEviction evicts expired windows every interval until ctx is done
func (l *FixedWindowLimiter) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict()
		}
	}
}

// Size returns the number of tracked keys
func (l *FixedWindowLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state)
}
