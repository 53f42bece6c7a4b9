package worker

import (
	"context"
	"fmt"
	"time"
)

// RunWithDeadline executes fn in its own goroutine and waits up to timeout
// for it to complete. The result slot is a 1-buffered channel owned solely
// by the waiter: the task writes it at most once and an abandoned task can
// never block on it or leak state into a later call.
//
// The task receives a context that is cancelled at the deadline, so a
// well-behaved fn stops early; a hung fn is simply abandoned.
func RunWithDeadline[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome, 1) // Buffered so an abandoned task never blocks
	go func() {
		val, err := fn(runCtx)
		done <- outcome{val: val, err: err}
	}()

	select {
	case out := <-done:
		return out.val, out.err
	case <-runCtx.Done():
		var zero T
		return zero, fmt.Errorf("task abandoned: %w", runCtx.Err())
	}
}
