package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seqops/liribatch/pkg/liribatch"
)

// Classify inspects every configured path and returns the single storage
// scheme they all share. Runs spanning more than one backend risk silent,
// costly data egress, so a mixed set is rejected deterministically before
// any I/O happens.
//
// The error wraps liribatch.ErrInvalidConfig when the set of distinct
// prefixes has size other than one, or when the single prefix is not a
// known backend.
func Classify(paths []string) (Scheme, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no storage paths supplied: %w", liribatch.ErrInvalidConfig)
	}

	prefixes := make(map[string]struct{})
	for _, p := range paths {
		prefixes[prefixToken(p)] = struct{}{}
	}

	if len(prefixes) != 1 {
		var distinct []string
		for p := range prefixes {
			distinct = append(distinct, p)
		}
		sort.Strings(distinct)
		return "", fmt.Errorf("all storage paths must share a common prefix, either gs:// or hail-az://, got {%s}: %w",
			strings.Join(distinct, ", "), liribatch.ErrInvalidConfig)
	}

	var prefix string
	for p := range prefixes {
		prefix = p
	}

	switch Scheme(prefix) {
	case SchemeGCS, SchemeAzure:
		return Scheme(prefix), nil
	default:
		return "", fmt.Errorf("unknown storage prefix used %s: %w", prefix, liribatch.ErrInvalidConfig)
	}
}

// prefixToken extracts the scheme token of a path: everything before the
// first ":". A path with no ":" yields itself, which then fails the known
// backend check.
func prefixToken(path string) string {
	token, _, _ := strings.Cut(path, ":")
	return token
}
