package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy is an explicit, injectable retry policy: max attempts, backoff
// bounds and a retryable-error predicate. Callers pass it into the rail
// client and the data collector so the policy itself stays unit-testable.
type Policy struct {
	// MaxAttempts is the total number of tries including the first.
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// Retryable reports whether an error is worth another attempt. A nil
	// predicate retries everything.
	Retryable func(error) bool
}

// Do runs op until it succeeds, exhausts the attempt ceiling, the predicate
// declines the error, or ctx is done. Returns the last error.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0 // bounded by attempts, not wall clock

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx))
}
