package storage

import (
	"context"
	"fmt"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// Open constructs the Bucket for a classified scheme. The credential handle
// each backend needs is negotiated here, once per run, and owned by the
// returned Bucket. All backends are wrapped with retry on transient errors.
func Open(ctx context.Context, scheme Scheme, logger liribatch.Logger) (Bucket, error) {
	var bucket Bucket
	var err error
	switch scheme {
	case SchemeGCS:
		bucket, err = NewGCSBucket(ctx, logger)
	case SchemeAzure:
		bucket, err = NewAzureBucket(logger)
	default:
		return nil, fmt.Errorf("unknown storage scheme %q: %w", scheme, liribatch.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}
	return NewRetryingBucket(bucket, logger), nil
}
