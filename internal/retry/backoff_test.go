package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff_DoublesWithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	}
	for attempt, expected := range want {
		if got := strategy.NextDelay(attempt); got != expected {
			t.Errorf("NextDelay(%d) = %v, want %v", attempt, got, expected)
		}
	}
}

func TestExponentialBackoff_Multipliers(t *testing.T) {
	tests := []struct {
		multiplier float64
		attempt    int
		want       time.Duration
	}{
		{1.5, 0, 100 * time.Millisecond},
		{1.5, 1, 150 * time.Millisecond},
		{1.5, 2, 225 * time.Millisecond},
		{3.0, 1, 300 * time.Millisecond},
		{3.0, 2, 900 * time.Millisecond},
	}
	for _, tt := range tests {
		strategy := NewExponentialBackoff(5,
			WithInitialDelay(100*time.Millisecond),
			WithMultiplier(tt.multiplier),
			WithJitter(0),
		)
		if got := strategy.NextDelay(tt.attempt); got != tt.want {
			t.Errorf("NextDelay(attempt=%d, multiplier=%v) = %v, want %v",
				tt.attempt, tt.multiplier, got, tt.want)
		}
	}
}

func TestExponentialBackoff_MaxDelayCap(t *testing.T) {
	strategy := NewExponentialBackoff(100,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithMaxDelay(1*time.Second),
		WithJitter(0),
	)

	// 100ms * 2^10 is over 100s; the cap must hold for every attempt.
	for attempt := 0; attempt <= 100; attempt++ {
		if got := strategy.NextDelay(attempt); got > 1*time.Second {
			t.Errorf("NextDelay(%d) = %v exceeds 1s cap", attempt, got)
		}
	}
	if got := strategy.NextDelay(50); got != 1*time.Second {
		t.Errorf("NextDelay(50) = %v, want exactly the 1s cap", got)
	}
}

func TestExponentialBackoff_DeterministicJitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		// jitter 0.1 maps random [0,1) to a factor in [0.9, 1.1).
		{0.0, 90 * time.Millisecond},
		{0.5, 100 * time.Millisecond},
		{1.0, 110 * time.Millisecond},
	}
	for _, tt := range tests {
		strategy := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return tt.random }),
		)
		if got := strategy.NextDelay(0); got != tt.want {
			t.Errorf("NextDelay(0) with random=%v = %v, want %v", tt.random, got, tt.want)
		}
	}
}

func TestExponentialBackoff_MaxAttempts(t *testing.T) {
	for _, n := range []int{0, 1, 5, -1} {
		if got := NewExponentialBackoff(n).MaxAttempts(); got != n {
			t.Errorf("MaxAttempts() = %d, want %d", got, n)
		}
	}
}
