package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func fastRetryConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 1 * time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	}
}

func TestExecuteRetriesTransientFailure(t *testing.T) {
	exec := NewExecutor(fastRetryConfig())

	attempts := 0
	errTransient := errors.New("transient")
	err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	}, func(err error) ErrorClassification {
		return ErrorClassification{
			Retryable:     errors.Is(err, errTransient),
			RecordFailure: true,
		}
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteStopsOnPermanentFailure(t *testing.T) {
	exec := NewExecutor(fastRetryConfig())

	attempts := 0
	errPermanent := errors.New("permanent")
	err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})
	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	exec := NewExecutor(fastRetryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	errTransient := errors.New("transient")
	err := exec.Execute(ctx, "nats.publish", func(context.Context) error {
		attempts++
		cancel()
		return errTransient
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected underlying error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("cancelled context must stop retries, got %d attempts", attempts)
	}
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errRemote := errors.New("remote down")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
			return errRemote
		}, classifier)
		if !errors.Is(err, errRemote) {
			t.Fatalf("expected remote error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, classifier)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatal("IsCircuitOpen must report the open breaker")
	}
}

func TestExecuteClassifierFailuresDoNotTripHealthyOps(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     1 * time.Millisecond,
		RetryMaxBackoff:         1 * time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      50 * time.Millisecond,
		BreakerHalfOpenMaxCalls: 1,
	})

	errClient := errors.New("bad request")
	classifier := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	}

	for i := 0; i < 5; i++ {
		err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
			return errClient
		}, classifier)
		if !errors.Is(err, errClient) {
			t.Fatalf("expected client error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Execute(context.Background(), "parseapi.parse", func(context.Context) error {
		return nil
	}, classifier)
	if err != nil {
		t.Fatalf("breaker must stay closed for non-recorded failures, got %v", err)
	}
}
