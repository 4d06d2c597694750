package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/seqops/liribatch/internal/logging"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// flakyBucket fails each operation a fixed number of times before
// delegating to an in-memory bucket.
type flakyBucket struct {
	inner     *MemoryBucket
	failures  int
	failWith  error
	readCalls int
	listCalls int
}

func (f *flakyBucket) Read(ctx context.Context, path string) (string, error) {
	f.readCalls++
	if f.readCalls <= f.failures {
		return "", f.failWith
	}
	return f.inner.Read(ctx, path)
}

func (f *flakyBucket) List(ctx context.Context, path string) ([]string, error) {
	f.listCalls++
	if f.listCalls <= f.failures {
		return nil, f.failWith
	}
	return f.inner.List(ctx, path)
}

func newFlakyBucket(failures int, failWith error) *flakyBucket {
	inner := NewMemoryBucket()
	inner.Put("gs://b/x.json", "content")
	return &flakyBucket{inner: inner, failures: failures, failWith: failWith}
}

func TestRetryingBucket_ReadRecoversFromTransientErrors(t *testing.T) {
	flaky := newFlakyBucket(2, &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "backend error"})
	bucket := NewRetryingBucket(flaky, logging.NewNullLogger())

	content, err := bucket.Read(context.Background(), "gs://b/x.json")
	require.NoError(t, err)
	assert.Equal(t, "content", content)
	assert.Equal(t, 3, flaky.readCalls)
}

func TestRetryingBucket_ListRecoversFromTransientErrors(t *testing.T) {
	flaky := newFlakyBucket(1, &googleapi.Error{Code: http.StatusTooManyRequests, Message: "slow down"})
	bucket := NewRetryingBucket(flaky, logging.NewNullLogger())

	paths, err := bucket.List(context.Background(), "gs://b/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"gs://b/x.json"}, paths)
	assert.Equal(t, 2, flaky.listCalls)
}

func TestRetryingBucket_FatalErrorNotRetried(t *testing.T) {
	flaky := newFlakyBucket(999, nil)
	flaky.failWith = notFoundError("gs://b/missing.json")
	bucket := NewRetryingBucket(flaky, logging.NewNullLogger())

	_, err := bucket.Read(context.Background(), "gs://b/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, liribatch.ErrPathNotFound))
	assert.Equal(t, 1, flaky.readCalls, "not-found must not be retried")
}

func TestRetryingBucket_GivesUpAfterMaxAttempts(t *testing.T) {
	transient := &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "backend error"}
	flaky := newFlakyBucket(999, transient)
	bucket := NewRetryingBucket(flaky, logging.NewNullLogger())

	_, err := bucket.Read(context.Background(), "gs://b/x.json")
	require.Error(t, err)
	assert.Equal(t, 1+retryMaxAttempts, flaky.readCalls)
}
