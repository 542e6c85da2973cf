package resilience

import (
	"context"
	"testing"
	"time"
)

func TestGateSpacesCalls(t *testing.T) {
	g := NewGate(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("wait error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms between three calls, got %v", elapsed)
	}
}

func TestGateZeroIntervalIsNoop(t *testing.T) {
	g := NewGate(0)
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("wait error: %v", err)
	}
}

func TestGateHonorsCancellation(t *testing.T) {
	g := NewGate(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	_ = g.Wait(ctx)
	cancel()
	if err := g.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
