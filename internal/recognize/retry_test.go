package recognize

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	transient := &RetryableError{StatusCode: 529, Message: "overloaded"}
	if !IsRetryable(transient) {
		t.Error("expected a RetryableError to be retryable")
	}
	if !IsRetryable(fmt.Errorf("attempt failed: %w", transient)) {
		t.Error("expected a wrapped RetryableError to be retryable")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("plain errors must not be retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil must not be retryable")
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	prevMin := time.Duration(0)
	for attempt := 0; attempt < MaxRetries; attempt++ {
		base := time.Second << uint(attempt)
		d := Backoff(attempt)
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, d, base, base+base/2)
		}
		if base < prevMin {
			t.Errorf("attempt %d: base %v shrank below %v", attempt, base, prevMin)
		}
		prevMin = base
	}

	// Far attempts stay at the 30s ceiling plus jitter.
	if d := Backoff(10); d < 30*time.Second || d > 45*time.Second {
		t.Errorf("capped backoff %v outside [30s, 45s]", d)
	}
}
