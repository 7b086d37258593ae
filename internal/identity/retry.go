package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/consultmatch/consultmatch/internal/utils"

	"go.uber.org/zap"
)

// RetryPolicy retries transient failures with exponential backoff:
// the delay doubles after each attempt, up to a bounded attempt
// count.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   250 * time.Millisecond,
	}
}

// transientError marks a failure worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (p RetryPolicy) run(ctx context.Context, logger *zap.Logger, call func() ([]byte, error)) ([]byte, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := p.BaseDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := call()
		if err == nil {
			return data, nil
		}

		var transient *transientError
		if !errors.As(err, &transient) {
			return nil, err
		}

		lastErr = transient.err

		if attempt == attempts {
			break
		}

		if logger != nil {
			logger.Debug("retrying identity request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(transient.err),
			)
		}

		if err := utils.WaitFor(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}

	return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
