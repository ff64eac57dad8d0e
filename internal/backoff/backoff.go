// Package backoff centralizes the retry delay math used by the request
// engine so the formula is testable in isolation.
package backoff

import "time"

// rateLimitMultiplier doubles the generic delay when the server signalled a
// rate limit without a usable Retry-After value.
const rateLimitMultiplier = 2

// Exponential computes factor * 2^attempt seconds, where attempt is the
// zero-indexed attempt that just failed. Max, when positive, caps the delay.
type Exponential struct {
	Factor float64
	Max    time.Duration
}

// Delay returns the backoff before retry attempt+1.
func (e Exponential) Delay(attempt int) time.Duration {
	return e.clamp(e.Factor * pow2(attempt) * float64(time.Second))
}

// RateLimitDelay returns the doubled backoff used for rate-limit responses
// that carry no usable Retry-After value.
func (e Exponential) RateLimitDelay(attempt int) time.Duration {
	return e.clamp(e.Factor * pow2(attempt) * rateLimitMultiplier * float64(time.Second))
}

func (e Exponential) clamp(d float64) time.Duration {
	delay := time.Duration(d)
	if delay < 0 {
		delay = 0
	}
	if e.Max > 0 && delay > e.Max {
		delay = e.Max
	}
	return delay
}

func pow2(exponent int) float64 {
	if exponent < 0 {
		exponent = 0
	}
	// Clamp to keep the multiplication from overflowing a Duration.
	if exponent > 30 {
		exponent = 30
	}
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= 2
	}
	return result
}
