package liribatch

import "time"

// ErrorClassifier separates transient failures, which are worth retrying,
// from fatal ones.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy schedules retries.
type BackoffStrategy interface {
	// NextDelay returns how long to wait before retry attempt (0-based).
	NextDelay(attempt int) time.Duration

	// MaxAttempts is the retry budget: 0 means no retries, -1 unlimited.
	MaxAttempts() int
}
