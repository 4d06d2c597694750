package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// Scheme identifies a storage backend by the prefix token of its paths
// (the substring before the first ":").
type Scheme string

const (
	// SchemeGCS is Google Cloud Storage (gs://bucket/object).
	SchemeGCS Scheme = "gs"

	// SchemeAzure is Azure Blob Storage addressed with Hail-style paths
	// (hail-az://account/container/blob).
	SchemeAzure Scheme = "hail-az"
)

// Bucket is the read/list capability over exactly one storage backend.
// A Bucket is selected once per run by the classifier and passed explicitly
// to downstream components; its credential handle is negotiated at
// construction and reused for every call.
type Bucket interface {
	// Read returns the UTF-8 text content of the object at path.
	// The error wraps liribatch.ErrPathNotFound if the object does not
	// exist and liribatch.ErrAccessDenied on permission failure.
	Read(ctx context.Context, path string) (string, error)

	// List expands path into the ordered sequence of concrete object paths
	// it denotes. Path may contain * wildcards (matched segmentwise, a *
	// never crosses a "/"). A path without wildcards that names an object
	// returns that single path; one that names a directory returns its
	// direct children. An empty result is NOT an error at this layer;
	// callers decide whether empty is fatal.
	List(ctx context.Context, path string) ([]string, error)
}

// splitWildcard returns the literal part of pattern before its first "*",
// and whether pattern contains a wildcard at all.
func splitWildcard(pattern string) (literal string, wildcard bool) {
	i := strings.IndexByte(pattern, '*')
	if i < 0 {
		return pattern, false
	}
	return pattern[:i], true
}

// matchPattern reports whether candidate matches pattern, with "*" matching
// any run of characters within a single "/"-separated segment. Only "*" is
// honored as a metacharacter; "?" and "[" occur literally in object names.
func matchPattern(pattern, candidate string) bool {
	pSegs := strings.Split(pattern, "/")
	cSegs := strings.Split(candidate, "/")
	if len(pSegs) != len(cSegs) {
		return false
	}
	for i := range pSegs {
		if !segMatch(pSegs[i], cSegs[i]) {
			return false
		}
	}
	return true
}

func segMatch(pattern, segment string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == segment
	}
	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(segment, parts[0]) {
		return false
	}
	segment = segment[len(parts[0]):]
	for i := 1; i < len(parts); i++ {
		part := parts[i]
		if i == len(parts)-1 {
			return strings.HasSuffix(segment, part)
		}
		idx := strings.Index(segment, part)
		if idx < 0 {
			return false
		}
		segment = segment[idx+len(part):]
	}
	return true
}

func notFoundError(path string) error {
	return fmt.Errorf("%s: %w", path, liribatch.ErrPathNotFound)
}

func accessError(path string, err error) error {
	return fmt.Errorf("%s: %v: %w", path, err, liribatch.ErrAccessDenied)
}
