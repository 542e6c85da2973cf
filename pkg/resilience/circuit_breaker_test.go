package resilience

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRateLimit(t *testing.T) {
	err := RateLimitError{Provider: "gemini", Message: "429"}
	if !IsRateLimit(err) {
		t.Fatal("direct RateLimitError not detected")
	}
	if !IsRateLimit(fmt.Errorf("call failed: %w", err)) {
		t.Fatal("wrapped RateLimitError not detected")
	}
	if IsRateLimit(errors.New("başka bir hata")) {
		t.Fatal("plain error misclassified")
	}
}

func TestCircuitBreakerTripsOnRateLimits(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	if !cb.Allow() {
		t.Fatal("fresh breaker should allow")
	}
	cb.OnError(RateLimitError{Provider: "gemini"})
	if !cb.Allow() {
		t.Fatal("below threshold should still allow")
	}
	cb.OnError(RateLimitError{Provider: "gemini"})
	if cb.Allow() {
		t.Fatal("breaker should be open at threshold")
	}
	if cb.OpenFor() <= 0 {
		t.Fatal("open breaker should report remaining cooldown")
	}
}

func TestCircuitBreakerIgnoresOtherErrors(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	cb.OnError(errors.New("timeout"))
	cb.OnError(errors.New("timeout"))
	if !cb.Allow() {
		t.Fatal("non-rate-limit errors must not trip the breaker")
	}
}

func TestCircuitBreakerClosesOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	cb.OnError(RateLimitError{Provider: "elevenlabs"})
	if cb.Allow() {
		t.Fatal("breaker should be open")
	}
	cb.OnSuccess()
	if !cb.Allow() {
		t.Fatal("success should close the breaker")
	}
	if cb.OpenFor() != 0 {
		t.Fatalf("OpenFor = %v, want 0", cb.OpenFor())
	}
}
