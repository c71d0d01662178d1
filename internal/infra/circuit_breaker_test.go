package infra

import (
	"testing"
	"time"
)

func testBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "test",
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          timeout,
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := testBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		if !cb.Allow() {
			t.Fatalf("request %d rejected while closed", i)
		}
		cb.RecordFailure()
	}

	if cb.GetState() != StateOpen {
		t.Errorf("state = %s, want OPEN", cb.GetState())
	}
	if cb.Allow() {
		t.Error("open breaker allowed a request")
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := testBreaker(time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.GetState() != StateClosed {
		t.Errorf("state = %s, want CLOSED after interleaved success", cb.GetState())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := testBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}
	time.Sleep(20 * time.Millisecond)

	if !cb.Allow() {
		t.Fatal("expected probe request after timeout")
	}
	if cb.GetState() != StateHalfOpen {
		t.Fatalf("state = %s, want HALF_OPEN", cb.GetState())
	}

	cb.RecordSuccess()
	cb.RecordSuccess()
	if cb.GetState() != StateClosed {
		t.Errorf("state = %s, want CLOSED after recovery", cb.GetState())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := testBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}
	time.Sleep(20 * time.Millisecond)
	cb.Allow()
	cb.RecordFailure()

	if cb.GetState() != StateOpen {
		t.Errorf("state = %s, want OPEN after failed probe", cb.GetState())
	}
}
