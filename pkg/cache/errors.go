package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent from the backend. File
// and null caches report misses via the Get ok flag instead; only the
// Redis backend needs the sentinel to tell a miss from a read failure.
var ErrCacheMiss = errors.New("cache miss")

// ErrNetwork marks backend connectivity failures: timeouts, connection
// resets, an unreachable Redis.
var ErrNetwork = errors.New("network error")

// RetryableError wraps an error that is worth retrying, typically a
// transient network fault on the Redis backend.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const (
	retryAttempts     = 3
	retryInitialDelay = time.Second
)

// RetryWithBackoff runs fn up to retryAttempts times, doubling the delay
// between attempts. Errors not wrapped with Retryable fail immediately;
// a cancelled ctx cuts the wait short.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryInitialDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
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
