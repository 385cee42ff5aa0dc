package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		b.RecordFailure()
	}
	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed before threshold, got %s", got)
	}

	b.RecordFailure()
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("expected open after threshold, got %s", got)
	}
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Second, 1)
	current := time.Unix(1_700_000_000, 0)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected open circuit, got %v", err)
	}

	current = current.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	b.RecordSuccess()

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Second, 2)
	current := time.Unix(1_700_000_000, 0)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected reopened circuit, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenLimitsInFlight(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Second, 1)
	current := time.Unix(1_700_000_000, 0)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe should pass: %v", err)
	}
	if err := b.Allow(); err != ErrCircuitOpen {
		t.Fatalf("second probe should be rejected, got %v", err)
	}
}
