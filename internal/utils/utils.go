package utils

import (
	"context"
	"time"
)

// WaitFor sleeps for d, returning early with the context error when
// the context is canceled first. Used for the post-staffing pause
// and the identity backoff delays.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
