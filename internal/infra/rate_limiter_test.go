package infra

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_TryAcquire(t *testing.T) {
	// Create limiter with 2 tokens, 10/second refill
	rl := NewRateLimiter(2, 10)

	// Should acquire first two tokens immediately
	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}
	if !rl.TryAcquire() {
		t.Error("expected second TryAcquire to succeed")
	}

	// Third should fail (no tokens left)
	if rl.TryAcquire() {
		t.Error("expected third TryAcquire to fail")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	// Create limiter with 1 token, 10/second refill
	rl := NewRateLimiter(1, 10)

	if !rl.TryAcquire() {
		t.Error("expected first TryAcquire to succeed")
	}
	if rl.TryAcquire() {
		t.Error("expected immediate TryAcquire to fail")
	}

	// Wait for refill (100ms = 1 token at 10/s)
	time.Sleep(120 * time.Millisecond)

	if !rl.TryAcquire() {
		t.Error("expected TryAcquire to succeed after refill")
	}
}

func TestRateLimiter_WaitBlocks(t *testing.T) {
	// 1 token, 100/second refill (fast for testing)
	rl := NewRateLimiter(1, 100)
	ctx := context.Background()

	// Exhaust the token
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	// Second Wait should block ~10ms (1/100 second)
	start := time.Now()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("second Wait failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 5*time.Millisecond {
		t.Errorf("expected Wait to block, but elapsed=%v", elapsed)
	}
}

func TestRateLimiter_WaitHonorsCancellation(t *testing.T) {
	// Tiny refill rate so Wait would block for a long time.
	rl := NewRateLimiter(1, 0.01)
	rl.TryAcquire() // exhaust

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("expected Wait to return the context error")
	}
}

func TestRateLimiterPerMinute(t *testing.T) {
	rl := NewRateLimiterPerMinute(60) // 1/second

	// Burst of 2 allowed
	if !rl.TryAcquire() || !rl.TryAcquire() {
		t.Error("expected burst of 2 acquisitions")
	}
	if rl.TryAcquire() {
		t.Error("expected third acquisition to fail")
	}
}
