// Package retry provides automatic retry logic with exponential backoff
// for transient cloud storage failures.
//
// The package supports pluggable error classification and backoff strategies,
// making it suitable for various retry scenarios beyond object storage.
//
// # Example Usage
//
//	classifier := retry.NewStorageErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return readObject(ctx)
//	})
//
// # Error Classification
//
// The ErrorClassifier interface determines which errors are transient
// (retryable) versus fatal (non-retryable). The StorageErrorClassifier
// recognizes throttling and server-side failures from the GCS and Azure Blob
// SDKs by HTTP status code, plus network-level failures.
//
// # Backoff Strategies
//
// The BackoffStrategy interface controls retry timing. ExponentialBackoff
// implements exponential backoff with configurable initial delay, maximum
// delay caps and jitter.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
