// Package ratelimit limits requests per client key.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int           // requests per window
	Remaining  int           // requests left before throttling
	RetryAfter time.Duration // set when Allowed is false
}

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// =========================================
// In-process token bucket
// =========================================

const (
	sweepInterval = time.Minute
	idleTTL       = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key, refilled at requests/window
// with a burst of requests. Keys idle for a few minutes are dropped.
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryLimiter allows requests per window for each key.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return newMemoryLimiter(requests, window, time.Now)
}

func newMemoryLimiter(requests int, window time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     requests,
		now:       now,
		lastSweep: now(),
	}
}

// Allow consumes one token for key.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now

	d := Decision{Limit: m.burst}
	if v.limiter.AllowN(now, 1) {
		d.Allowed = true
		d.Remaining = int(math.Max(0, math.Floor(v.limiter.TokensAt(now))))
		return d, nil
	}

	missing := 1 - v.limiter.TokensAt(now)
	d.RetryAfter = time.Duration(missing / float64(m.limit) * float64(time.Second))
	return d, nil
}

func (m *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(m.visitors, key)
		}
	}
	m.lastSweep = now
}

// Len is the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}
