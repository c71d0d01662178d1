package infra

import (
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	rl := NewRateLimiter(2, 10)

	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}
	if !rl.TryAcquire() {
		t.Error("expected second TryAcquire to succeed")
	}
	if rl.TryAcquire() {
		t.Error("expected third TryAcquire to fail, bucket empty")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, 10)

	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}
	if rl.TryAcquire() {
		t.Error("expected immediate TryAcquire to fail")
	}

	// 120ms at 10 tokens/s refills at least one token.
	time.Sleep(120 * time.Millisecond)
	if !rl.TryAcquire() {
		t.Error("expected TryAcquire to succeed after refill")
	}
}

func TestRateLimiter_WaitBlocks(t *testing.T) {
	rl := NewRateLimiter(1, 100)

	rl.Wait()

	start := time.Now()
	rl.Wait()
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("second Wait returned after %v, expected it to block for a refill", elapsed)
	}
}
