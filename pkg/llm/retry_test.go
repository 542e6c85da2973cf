package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	out, err := Retry(context.Background(), RetryConfig{MaxAttempts: 3, Sleep: func(time.Duration) {}},
		func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("geçici hata")
			}
			return "tamam", nil
		})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if out != "tamam" || calls != 3 {
		t.Fatalf("out=%q calls=%d", out, calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), RetryConfig{MaxAttempts: 3, Sleep: func(time.Duration) {}},
		func(context.Context) (string, error) {
			calls++
			return "", errors.New("kalıcı hata")
		})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryCancelInterruptsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	start := time.Now()
	_, err := Retry(ctx, RetryConfig{MaxAttempts: 2, BaseDelay: 10 * time.Second},
		func(context.Context) (string, error) {
			calls++
			cancel()
			return "", errors.New("kota aşıldı")
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("backoff not interrupted, waited %v", elapsed)
	}
}

func TestRetryStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Retry(ctx, RetryConfig{MaxAttempts: 3, Sleep: func(time.Duration) {}},
		func(context.Context) (string, error) {
			calls++
			return "", errors.New("ulaşılamadı")
		})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestRetryRespectsNonRetryable(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), RetryConfig{
		MaxAttempts: 5,
		Sleep:       func(time.Duration) {},
		IsRetryable: func(error) bool { return false },
	}, func(context.Context) (string, error) {
		calls++
		return "", errors.New("yetkisiz")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	var delays []time.Duration
	attempt := 0
	_, _ = Retry(context.Background(), RetryConfig{
		MaxAttempts: 6,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    500 * time.Millisecond,
		Sleep:       func(d time.Duration) { delays = append(delays, d) },
	}, func(context.Context) (string, error) {
		attempt++
		return "", fmt.Errorf("deneme %d", attempt)
	})

	if len(delays) != 5 {
		t.Fatalf("delays recorded = %d, want 5", len(delays))
	}
	for i := 1; i < len(delays); i++ {
		if delays[i] < delays[i-1] {
			t.Fatalf("delay shrank: %v", delays)
		}
	}
	for _, d := range delays {
		if d > 500*time.Millisecond {
			t.Fatalf("delay %v exceeds cap", d)
		}
	}
}
