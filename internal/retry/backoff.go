package retry

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff grows the retry delay geometrically per attempt, capped
// at maxDelay, with optional jitter so concurrent callers don't retry in
// lockstep.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int

	// jitter is the fraction of the delay randomized in both directions
	// (0.1 means +/- 10%); 0 disables it.
	jitter     float64
	jitterFunc func() float64
}

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between attempts.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter fraction (0.0-1.0).
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithJitterFunc replaces the random source with a caller-supplied one.
// Tests use this to make delays deterministic.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff returns a strategy allowing maxAttempts retries
// beyond the initial attempt (-1 for unlimited, 0 for none). Defaults:
// 100ms initial delay, 30s cap, multiplier 2, 10% jitter.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the delay before the given retry attempt (0-based).
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delayMs := float64(b.initialDelay.Milliseconds()) * math.Pow(b.multiplier, float64(attempt))
	if capMs := float64(b.maxDelay.Milliseconds()); delayMs > capMs {
		delayMs = capMs
	}
	if b.jitter > 0 {
		random := b.jitterFunc
		if random == nil {
			random = rand.Float64
		}
		// Map [0,1) to [-1,1) and scale by the jitter fraction.
		delayMs *= 1.0 + b.jitter*(random()-0.5)*2.0
	}
	return time.Duration(delayMs) * time.Millisecond
}

// MaxAttempts returns the retry budget.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}
