package retry

import (
	"context"
	"time"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// Executor runs an operation, retrying transient failures per the backoff
// strategy. Execute is safe for concurrent use; WithOnRetry returns a new
// instance rather than mutating the receiver.
type Executor struct {
	classifier liribatch.ErrorClassifier
	strategy   liribatch.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. Panics if classifier or strategy is nil.
func NewExecutor(classifier liribatch.ErrorClassifier, strategy liribatch.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of the executor that invokes callback before
// each retry sleep.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation, retrying while it fails with a transient error and
// the retry budget holds. A fatal error, context cancellation, or an
// exhausted budget ends the run; the last error is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return err
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
	}

	return err
}
