package resilience

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between outbound provider calls.
// It is shared by all workers so the whole run respects upstream quota.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Wait blocks until the caller may proceed or the context is done.
// A zero interval makes Wait a no-op.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil || g.interval <= 0 {
		return ctx.Err()
	}
	g.mu.Lock()
	now := time.Now()
	at := g.next
	if at.Before(now) {
		at = now
	}
	g.next = at.Add(g.interval)
	g.mu.Unlock()

	d := time.Until(at)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
