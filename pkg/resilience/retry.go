package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	// Retryable reports whether err is worth another attempt. Nil retries
	// every error.
	Retryable func(error) bool
}

// DefaultRetryConfig gives up immediately on an open breaker.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   retryAttempts,
		InitialDelay:  retryInitialDelay,
		MaxDelay:      retryMaxDelay,
		BackoffFactor: retryBackoff,
		Retryable:     func(err error) bool { return !errors.Is(err, ErrCircuitOpen) },
	}
}

func (rc *RetryConfig) next(delay time.Duration) time.Duration {
	delay = time.Duration(float64(delay) * rc.BackoffFactor)
	if rc.MaxDelay > 0 && delay > rc.MaxDelay {
		return rc.MaxDelay
	}
	return delay
}

// Retry calls fn until it succeeds, returns a non-retryable error, or
// MaxAttempts is used up. The wait between attempts grows by BackoffFactor
// and is cut short when ctx is cancelled.
func Retry(ctx context.Context, config *RetryConfig, fn func() error) error {
	var err error
	delay := config.InitialDelay

	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(); err == nil {
			return nil
		}
		if config.Retryable != nil && !config.Retryable(err) {
			return err
		}
		if attempt >= config.MaxAttempts {
			break
		}

		wait := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			wait.Stop()
			return ctx.Err()
		case <-wait.C:
		}
		delay = config.next(delay)
	}
	return fmt.Errorf("gave up after %d attempts: %w", config.MaxAttempts, err)
}
