package resolver

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy returns the retry schedule base, 2*base, 4*base and so on.
// It has no jitter, no cap and no elapsed-time limit; the retry count is bounded by the caller.
func Policy(base time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Backoff returns the delay before the given retry (1-indexed): base * 2^(retry-1).
// No delay precedes the first attempt.
func Backoff(base time.Duration, retry int) time.Duration {
	if retry < 1 {
		return 0
	}

	b := Policy(base)
	var delay time.Duration
	for i := 0; i < retry; i++ {
		delay = b.NextBackOff()
	}
	return delay
}
