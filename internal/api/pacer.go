package api

import (
	"sync"
	"time"
)

// Pacer spaces outbound calls so the API's rate limit is respected across
// all concurrent callers of one client. Pacing is by scheduled dispatch time,
// not actual dispatch time: a backlog of queued calls is spread strictly one
// interval apart instead of bursting after a stall.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewPacer creates a pacer with the given minimum spacing. A non-positive
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Schedule claims the next dispatch slot and returns how long the caller must
// wait before performing its call. The slot claim and the wait computation
// happen under one lock, so two callers can never compute the same wait from
// a stale slot.
func (p *Pacer) Schedule(now time.Time) time.Duration {
	if p.interval <= 0 {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last.IsZero() || !p.last.Add(p.interval).After(now) {
		p.last = now
		return 0
	}

	p.last = p.last.Add(p.interval)
	return p.last.Add(p.interval).Sub(now)
}
