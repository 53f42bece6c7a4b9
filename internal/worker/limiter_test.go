package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSpacesCalls(t *testing.T) {
	l := NewLimiter(30 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}
	// First call is immediate, the next two wait an interval each
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("3 calls took %v, want at least ~60ms of spacing", elapsed)
	}
}

func TestLimiterDisabledWithZeroInterval(t *testing.T) {
	l := NewLimiter(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("100 calls took %v with limiting disabled", elapsed)
	}
}

func TestLimiterWaitCancelled(t *testing.T) {
	l := NewLimiter(time.Hour)
	_ = l.Allow() // consume the initial token

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected error when the context expires before the next slot")
	}
}
