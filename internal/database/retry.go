package database

import (
	"context"
	"fmt"
	"time"

	"github.com/chybatronik/driftiAPI/internal/logging"
)

// RetryPolicy is a fixed-delay bounded retry: no backoff, no jitter
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy allows five attempts five seconds apart
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 5, Delay: 5 * time.Second}
}

// ConnectResult describes a successful startup connection
type ConnectResult struct {
	Attempts int
	Host     string
	Database string
}

// RetryOption customises ConnectWithRetry
type RetryOption func(*retryOptions)

type retryOptions struct {
	sleep   func(context.Context, time.Duration) error
	observe func(attempt int, err error)
}

// WithSleep replaces the wait between attempts
func WithSleep(fn func(context.Context, time.Duration) error) RetryOption {
	return func(o *retryOptions) {
		o.sleep = fn
	}
}

// WithAttemptObserver is called after every attempt with its outcome
func WithAttemptObserver(fn func(attempt int, err error)) RetryOption {
	return func(o *retryOptions) {
		o.observe = fn
	}
}

// ConnectWithRetry makes sequential connection attempts until one succeeds
// or policy.MaxRetries attempts have failed. An empty uri is a failed attempt.
// Cancelling ctx aborts the wait between attempts.
func ConnectWithRetry(ctx context.Context, handle *Handle, connector Connector, uri string, policy RetryPolicy, logger *logging.Logger, opts ...RetryOption) (ConnectResult, error) {
	o := retryOptions{sleep: sleepContext}
	for _, opt := range opts {
		opt(&o)
	}

	maxRetries := policy.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return ConnectResult{Attempts: attempt - 1}, fmt.Errorf("database connect aborted: %w", err)
		}

		logger.Database("connecting", append(logging.Attempt(attempt, maxRetries), "uri", RedactURI(uri))...)

		var err error
		if uri == "" {
			err = ErrEmptyURI
		} else {
			err = handle.Connect(ctx, connector, uri)
		}

		if o.observe != nil {
			o.observe(attempt, err)
		}

		if err == nil {
			result := ConnectResult{Attempts: attempt, Host: handle.Host(), Database: handle.Name()}
			logger.Database("connected",
				logging.FieldHost, result.Host,
				logging.FieldDatabase, result.Database,
				logging.FieldAttempt, attempt,
			)
			return result, nil
		}

		logger.DatabaseError("connection attempt failed", err,
			append(logging.Attempt(attempt, maxRetries), logging.FieldErrorKind, Classify(err).String())...)

		if attempt >= maxRetries {
			logger.Error("database: max retries reached, giving up", logging.FieldMaxRetries, maxRetries)
			return ConnectResult{Attempts: attempt}, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
		}

		logger.Database("retrying", logging.RetryDelay(policy.Delay))
		if err := o.sleep(ctx, policy.Delay); err != nil {
			return ConnectResult{Attempts: attempt}, fmt.Errorf("database connect aborted: %w", err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
