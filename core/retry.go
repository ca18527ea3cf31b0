package core

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy determines retry behavior for failed transport sends.
type RetryPolicy interface {
	// NextDelay returns the delay before the next retry attempt and whether to retry.
	// If ok is false, no more retries should be attempted.
	// attempt starts at 0 for the first retry after the initial failure.
	NextDelay(attempt int, err error) (delay time.Duration, ok bool)
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts (default: 3)
	BaseDelay  time.Duration // Initial delay before first retry (default: 200ms)
	MaxDelay   time.Duration // Maximum delay cap (default: 5s)
	Jitter     float64       // Jitter factor 0.0-1.0 (default: 0.2)
}

// DefaultRetryPolicy returns exponential backoff with jitter, max 3 retries, 5s max delay.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Jitter:     0.2,
	})
}

// NewRetryPolicy creates a retry policy with the given configuration.
func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 5 * time.Second
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		cfg.Jitter = 0.2
	}
	return &exponentialBackoff{cfg: cfg}
}

type exponentialBackoff struct {
	cfg RetryConfig
}

func (e *exponentialBackoff) NextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= e.cfg.MaxRetries {
		return 0, false
	}
	if !isRetryable(err) {
		return 0, false
	}

	// baseDelay * 2^attempt
	delay := float64(e.cfg.BaseDelay) * math.Pow(2, float64(attempt))

	if e.cfg.Jitter > 0 {
		jitterRange := delay * e.cfg.Jitter
		delay += (rand.Float64()*2 - 1) * jitterRange
	}

	if delay > float64(e.cfg.MaxDelay) {
		delay = float64(e.cfg.MaxDelay)
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay), true
}

// isRetryable reports whether a transport send error is worth another attempt.
// Caller cancellation, deadlines and requests that cannot be built are final.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var invalid *InvalidRequestError
	return !errors.As(err, &invalid)
}

// RetryTransport re-sends a request when the wrapped transport fails to obtain
// any response. Responses are never retried, whatever their status, so service
// and decode failures always reach the caller unchanged.
type RetryTransport struct {
	next   Transport
	policy RetryPolicy
}

// NewRetryTransport wraps next with policy, or DefaultRetryPolicy when policy is nil.
func NewRetryTransport(next Transport, policy RetryPolicy) *RetryTransport {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	return &RetryTransport{next: next, policy: policy}
}

// Send implements Transport.
func (t *RetryTransport) Send(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
	for attempt := 0; ; attempt++ {
		resp, err := t.next.Send(ctx, req)
		if err == nil {
			return resp, nil
		}

		delay, ok := t.policy.NextDelay(attempt, err)
		if !ok {
			return nil, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// Compile-time check that RetryTransport implements Transport.
var _ Transport = (*RetryTransport)(nil)
