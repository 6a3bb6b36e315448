package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("malformed image")
	})
	if err == nil {
		t.Fatal("Retry() error = nil, want permanent error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryHonorsSuggestedDelay(t *testing.T) {
	calls := 0
	start := time.Now()
	// Base delay is far too long for a test; the suggested delay must win.
	err := Retry(context.Background(), 3, time.Minute, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("throttled"), After: 5 * time.Millisecond}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Retry() waited %s, suggested delay not honored", elapsed)
	}
}

func TestRetryCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}
