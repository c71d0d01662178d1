package infra

import "time"

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// CalculateBackoff returns the exponential backoff delay for a retry
// attempt: base * 2^retryCount, capped at one minute. Negative counts
// return the base delay.
func CalculateBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		return backoffBase
	}
	// 2^30 seconds is already far past the cap.
	if retryCount > 30 {
		return backoffMax
	}

	delay := backoffBase * time.Duration(1<<retryCount)
	if delay > backoffMax {
		return backoffMax
	}
	return delay
}
