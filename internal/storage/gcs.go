package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// GCSBucket accesses Google Cloud Storage through ambient application
// default credentials. The client is negotiated once at construction and
// reused for every call.
type GCSBucket struct {
	client *gcs.Client
	logger liribatch.Logger
}

// NewGCSBucket creates a GCS-backed Bucket using application default
// credentials (gcloud login, service account, or workload identity).
func NewGCSBucket(ctx context.Context, logger liribatch.Logger) (*GCSBucket, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %v: %w", err, liribatch.ErrAccessDenied)
	}
	return &GCSBucket{client: client, logger: logger}, nil
}

// Close releases the underlying client.
func (g *GCSBucket) Close() error {
	return g.client.Close()
}

// Read returns the text content of the object at a gs:// path.
func (g *GCSBucket) Read(ctx context.Context, path string) (string, error) {
	bucket, key, err := parseGCSPath(path)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", notFoundError(path)
	}

	rc, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return "", classifyGCSError(path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// List expands a gs:// path, which may contain * wildcards, into concrete
// object paths in lexicographic order.
func (g *GCSBucket) List(ctx context.Context, path string) ([]string, error) {
	bucket, key, err := parseGCSPath(path)
	if err != nil {
		return nil, err
	}

	literal, wildcard := splitWildcard(key)
	if wildcard {
		return g.listMatching(ctx, bucket, literal, key)
	}

	// A concrete object takes precedence over a same-named prefix.
	if key != "" {
		_, err := g.client.Bucket(bucket).Object(key).Attrs(ctx)
		switch {
		case err == nil:
			return []string{gcsPath(bucket, key)}, nil
		case errors.Is(err, gcs.ErrObjectNotExist):
			// fall through to directory listing
		default:
			return nil, classifyGCSError(path, err)
		}
	}

	return g.listChildren(ctx, bucket, key, path)
}

// listMatching lists every object under the literal prefix of a wildcard
// pattern and keeps the ones the full pattern matches.
func (g *GCSBucket) listMatching(ctx context.Context, bucket, literal, pattern string) ([]string, error) {
	it := g.client.Bucket(bucket).Objects(ctx, &gcs.Query{Prefix: literal})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGCSError(gcsPath(bucket, literal), err)
		}
		if matchPattern(pattern, attrs.Name) {
			paths = append(paths, gcsPath(bucket, attrs.Name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// listChildren returns the objects directly under a prefix, non-recursively.
func (g *GCSBucket) listChildren(ctx context.Context, bucket, key, path string) ([]string, error) {
	prefix := key
	if prefix != "" {
		prefix += "/"
	}

	it := g.client.Bucket(bucket).Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	var paths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGCSError(path, err)
		}
		// Synthetic directory entries carry Prefix instead of Name.
		if attrs.Name == "" || attrs.Name == prefix {
			continue
		}
		paths = append(paths, gcsPath(bucket, attrs.Name))
	}
	sort.Strings(paths)
	return paths, nil
}

// parseGCSPath splits gs://BUCKET[/OBJECT] into bucket and object key.
func parseGCSPath(path string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(path, "gs://")
	if trimmed == path {
		return "", "", fmt.Errorf("not a gs:// path: %s: %w", path, liribatch.ErrInvalidConfig)
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	bucket, key, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("GCS path must be of the form gs://BUCKET[/OBJECT]: %s: %w", path, liribatch.ErrInvalidConfig)
	}
	return bucket, key, nil
}

func gcsPath(bucket, key string) string {
	return "gs://" + bucket + "/" + key
}

// classifyGCSError maps GCS client errors onto the run's error taxonomy.
func classifyGCSError(path string, err error) error {
	if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
		return notFoundError(path)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return accessError(path, err)
		case http.StatusNotFound:
			return notFoundError(path)
		}
	}
	return fmt.Errorf("%s: %w", path, err)
}
