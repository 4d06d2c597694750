package storage

import (
	"context"
	"time"

	"github.com/seqops/liribatch/internal/retry"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// retryMaxAttempts bounds how often a throttled or flaky storage call is
// retried before its error is surfaced.
const retryMaxAttempts = 3

// RetryingBucket decorates a Bucket with retry on transient storage errors
// (throttling, 5xx, network failures). Not-found and access-denied errors
// are surfaced immediately.
type RetryingBucket struct {
	inner    Bucket
	executor *retry.Executor
}

// NewRetryingBucket wraps inner with the default storage retry policy.
func NewRetryingBucket(inner Bucket, logger liribatch.Logger) *RetryingBucket {
	executor := retry.NewExecutor(
		retry.NewStorageErrorClassifier(),
		retry.NewExponentialBackoff(retryMaxAttempts,
			retry.WithInitialDelay(200*time.Millisecond),
			retry.WithMaxDelay(10*time.Second),
		),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Retrying storage call in %s after transient error (attempt %d): %v",
			delay, attempt+1, err)
	})
	return &RetryingBucket{inner: inner, executor: executor}
}

// Read implements Bucket.
func (b *RetryingBucket) Read(ctx context.Context, path string) (string, error) {
	var content string
	err := b.executor.Execute(ctx, func(ctx context.Context) error {
		var readErr error
		content, readErr = b.inner.Read(ctx, path)
		return readErr
	})
	return content, err
}

// List implements Bucket.
func (b *RetryingBucket) List(ctx context.Context, path string) ([]string, error) {
	var paths []string
	err := b.executor.Execute(ctx, func(ctx context.Context) error {
		var listErr error
		paths, listErr = b.inner.List(ctx, path)
		return listErr
	})
	return paths, err
}
