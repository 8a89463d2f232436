package recognize

import (
	"errors"
	"math/rand"
	"time"
)

// MaxRetries bounds recognition attempts per render.
const MaxRetries = 3

const (
	backoffBase = time.Second
	backoffCap  = 30 * time.Second
)

// IsRetryable reports whether err carries a RetryableError, meaning the
// API signalled a transient condition.
func IsRetryable(err error) bool {
	var rerr *RetryableError
	return errors.As(err, &rerr)
}

// Backoff returns the pause before retrying attempt n (0-indexed):
// exponential growth capped at backoffCap, plus up to 50% jitter.
func Backoff(attempt int) time.Duration {
	d := backoffBase << uint(attempt)
	if d > backoffCap {
		d = backoffCap
	}
	return d + time.Duration(rand.Int63n(int64(d/2)))
}
