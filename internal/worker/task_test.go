package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunWithDeadlineCompletes(t *testing.T) {
	got, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestRunWithDeadlinePropagatesError(t *testing.T) {
	wantErr := errors.New("task failed")
	_, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestRunWithDeadlineTimesOut(t *testing.T) {
	start := time.Now()
	_, err := RunWithDeadline(context.Background(), 20*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		time.Sleep(time.Second)
		return 1, nil
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded in chain", err)
	}
	if !strings.Contains(err.Error(), "abandoned") {
		t.Errorf("error = %v, should say the task was abandoned", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("waited %v, should have returned at the deadline", elapsed)
	}
}

func TestRunWithDeadlineAbandonedTaskCannotAffectLaterCalls(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	_, err := RunWithDeadline(context.Background(), 10*time.Millisecond, func(ctx context.Context) (string, error) {
		<-block
		return "stale", nil
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}

	got, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fresh" {
		t.Errorf("got %q, want %q", got, "fresh")
	}
}

func TestRunWithDeadlineHonorsParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunWithDeadline(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if err == nil {
		t.Error("expected error with a cancelled parent context")
	}
}
