package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outbound calls to respect a remote service's usage policy
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter enforcing at least interval between calls.
// A non-positive interval disables limiting.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or the context is cancelled
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks if a call is allowed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
