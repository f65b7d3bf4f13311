package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type retryClient struct {
	next     Client
	attempts int
	backoff  time.Duration
}

// WithRetry retries failed completions with exponential backoff.
// Missing keys, client errors and context cancellation are not retried.
func WithRetry(c Client, attempts int, backoff time.Duration) Client {
	if attempts <= 1 {
		return c
	}
	return &retryClient{next: c, attempts: attempts, backoff: backoff}
}

func (r *retryClient) Name() string { return r.next.Name() }

func (r *retryClient) Close() error { return r.next.Close() }

func (r *retryClient) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error
	wait := r.backoff
	for attempt := range r.attempts {
		if attempt > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
			wait *= 2
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := r.next.Complete(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			break
		}
	}
	if errors.Is(lastErr, ErrExternalService) || errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %w", ErrExternalService, lastErr)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrMissingAPIKey) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
