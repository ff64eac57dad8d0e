package backoff

import (
	"testing"
	"time"
)

func TestExponentialDelay(t *testing.T) {
	e := Exponential{Factor: 1.0}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
	}
	for _, tc := range cases {
		if got := e.Delay(tc.attempt); got != tc.want {
			t.Errorf("Delay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestRateLimitDelayDoubles(t *testing.T) {
	e := Exponential{Factor: 0.5}

	for attempt := 0; attempt < 4; attempt++ {
		generic := e.Delay(attempt)
		limited := e.RateLimitDelay(attempt)
		if limited != 2*generic {
			t.Errorf("RateLimitDelay(%d) = %v, want double of %v", attempt, limited, generic)
		}
	}
}

func TestFractionalFactor(t *testing.T) {
	e := Exponential{Factor: 0.1}
	if got := e.Delay(0); got != 100*time.Millisecond {
		t.Errorf("Delay(0) = %v, want 100ms", got)
	}
}

func TestMaxCapsDelay(t *testing.T) {
	e := Exponential{Factor: 1.0, Max: 3 * time.Second}
	if got := e.Delay(5); got != 3*time.Second {
		t.Errorf("Delay(5) = %v, want capped 3s", got)
	}
	if got := e.RateLimitDelay(0); got != 2*time.Second {
		t.Errorf("RateLimitDelay(0) = %v, want 2s", got)
	}
}

func TestNegativeAndHugeAttemptsClamp(t *testing.T) {
	e := Exponential{Factor: 1.0, Max: time.Hour}
	if got := e.Delay(-3); got != time.Second {
		t.Errorf("Delay(-3) = %v, want 1s", got)
	}
	if got := e.Delay(500); got != time.Hour {
		t.Errorf("Delay(500) = %v, want capped 1h", got)
	}
}

func TestZeroFactorMeansNoSleep(t *testing.T) {
	e := Exponential{}
	if got := e.Delay(3); got != 0 {
		t.Errorf("Delay(3) = %v, want 0", got)
	}
	if got := e.RateLimitDelay(3); got != 0 {
		t.Errorf("RateLimitDelay(3) = %v, want 0", got)
	}
}
