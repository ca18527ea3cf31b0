package core

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	if policy == nil {
		t.Fatal("DefaultRetryPolicy() returned nil")
	}
}

func TestRetryPolicyRetryableErrors(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"nil error", nil, false},
		{"context.Canceled", context.Canceled, false},
		{"context.DeadlineExceeded", context.DeadlineExceeded, false},
		{"invalid request", &InvalidRequestError{Err: errors.New("parse \"::\": missing protocol scheme")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := policy.NextDelay(0, tt.err)
			if ok != tt.wantRetry {
				t.Errorf("NextDelay(0, %v) retry = %v, want %v", tt.err, ok, tt.wantRetry)
			}
		})
	}
}

func TestRetryPolicyMaxRetries(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Jitter:     0,
	})
	err := errors.New("connection reset")

	for attempt := 0; attempt < 3; attempt++ {
		if _, ok := policy.NextDelay(attempt, err); !ok {
			t.Errorf("NextDelay(%d, err) should allow retry", attempt)
		}
	}
	if _, ok := policy.NextDelay(3, err); ok {
		t.Error("NextDelay(3, err) should not allow retry (exceeds max)")
	}
}

func TestRetryPolicyExponentialBackoff(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Jitter:     0,
	})
	err := errors.New("connection reset")

	for attempt := 0; attempt < 4; attempt++ {
		delay, ok := policy.NextDelay(attempt, err)
		if !ok {
			t.Fatalf("NextDelay(%d, err) should allow retry", attempt)
		}
		want := 100 * time.Millisecond * time.Duration(1<<attempt)
		if delay != want {
			t.Errorf("attempt %d: delay = %v, want %v", attempt, delay, want)
		}
	}
}

func TestRetryPolicyMaxDelayCap(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 10,
		BaseDelay:  time.Second,
		MaxDelay:   5 * time.Second,
		Jitter:     0,
	})

	delay, ok := policy.NextDelay(5, errors.New("connection reset"))
	if !ok {
		t.Fatal("should allow retry")
	}
	if delay != 5*time.Second {
		t.Errorf("delay = %v, want 5s (max cap)", delay)
	}
}

func TestRetryPolicyJitter(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Jitter:     0.5,
	})

	delays := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		delay, ok := policy.NextDelay(0, errors.New("connection reset"))
		if !ok {
			t.Fatal("should allow retry")
		}
		delays[delay] = true
		if delay < 500*time.Millisecond || delay > 1500*time.Millisecond {
			t.Errorf("delay %v outside expected jitter range [0.5s, 1.5s]", delay)
		}
	}
	if len(delays) < 2 {
		t.Error("jitter should produce varying delays")
	}
}

func TestRetryPolicyConfigDefaults(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{Jitter: -1})
	err := errors.New("connection reset")

	if _, ok := policy.NextDelay(0, err); !ok {
		t.Error("policy with default config should allow retry")
	}
	if _, ok := policy.NextDelay(3, err); ok {
		t.Error("policy should respect default max retries of 3")
	}
}

func fastRetry() RetryPolicy {
	return NewRetryPolicy(RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   time.Millisecond,
		Jitter:     0,
	})
}

func TestRetryTransportRetriesSendErrors(t *testing.T) {
	var calls atomic.Int32
	next := TransportFunc(func(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("connection refused")
		}
		return &TransportResponse{Status: http.StatusOK, Body: []byte(`{}`)}, nil
	})

	resp, err := NewRetryTransport(next, fastRetry()).Send(context.Background(), &TransportRequest{})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", resp.Status)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestRetryTransportGivesUp(t *testing.T) {
	var calls atomic.Int32
	sendErr := errors.New("connection refused")
	next := TransportFunc(func(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
		calls.Add(1)
		return nil, sendErr
	})

	_, err := NewRetryTransport(next, fastRetry()).Send(context.Background(), &TransportRequest{})
	if !errors.Is(err, sendErr) {
		t.Errorf("Send() error = %v, want %v", err, sendErr)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", got)
	}
}

func TestRetryTransportNeverRetriesResponses(t *testing.T) {
	var calls atomic.Int32
	next := TransportFunc(func(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
		calls.Add(1)
		return &TransportResponse{Status: http.StatusServiceUnavailable}, nil
	})

	resp, err := NewRetryTransport(next, fastRetry()).Send(context.Background(), &TransportRequest{})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", resp.Status)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRetryTransportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	next := TransportFunc(func(ctx context.Context, req *TransportRequest) (*TransportResponse, error) {
		cancel()
		return nil, errors.New("connection refused")
	})
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})

	_, err := NewRetryTransport(next, policy).Send(ctx, &TransportRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Send() error = %v, want context.Canceled", err)
	}
}
