package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a cache backend cannot be reached.
var ErrNetwork = errors.New("network error")

// RetryableError marks a backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff bounds a retry loop: Attempts calls, sleeping Delay after the
// first failure and doubling it after each further one.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// RequestBackoff is used by backends that sit on the generation path.
// A failed lookup only costs a regeneration of a few milliseconds, so the
// worst case (25ms + 50ms) stays in the same range rather than stalling a
// request for seconds.
var RequestBackoff = Backoff{Attempts: 3, Delay: 25 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error not wrapped
// with [Retryable], b.Attempts is used up, or ctx is done.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
