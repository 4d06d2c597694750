// Package resolve matches each phenopacket in a cohort to exactly one
// discovered VCF, producing the validated sample → file table every
// downstream job descriptor is built from.
package resolve

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/seqops/liribatch/internal/phenopacket"
	"github.com/seqops/liribatch/internal/storage"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// Resolver drives the resolution of a cohort against one storage backend.
// Resolution is sequential and fail-fast: records are processed one at a
// time in discovery order, and the first validation failure aborts the
// whole run with no partial table.
type Resolver struct {
	bucket storage.Bucket
	loader *phenopacket.Loader
	logger liribatch.Logger
}

// New creates a Resolver over the given bucket.
func New(bucket storage.Bucket, logger liribatch.Logger) *Resolver {
	return &Resolver{
		bucket: bucket,
		loader: phenopacket.NewLoader(bucket, logger),
		logger: logger,
	}
}

// ExpandPaths expands each pattern into concrete paths and concatenates the
// results in input order. A pattern that expands to nothing is fatal: an
// incomplete input set must not silently shrink the cohort. The error wraps
// liribatch.ErrPathNotFound.
func (r *Resolver) ExpandPaths(ctx context.Context, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		expanded, err := r.bucket.List(ctx, pattern)
		if err != nil {
			return nil, err
		}
		if len(expanded) == 0 {
			return nil, fmt.Errorf("%s not found: %w", pattern, liribatch.ErrPathNotFound)
		}
		paths = append(paths, expanded...)
	}
	return paths, nil
}

// Resolve matches each phenopacket to exactly one VCF from the discovered
// pool. When sampleID is non-empty, records for other samples are skipped
// and processing stops as soon as the requested sample has been resolved;
// phenopackets after that point are never read. A requested sample that
// matches no record yields an empty table with RequestedFound false, not an
// error — the caller decides how to surface that.
//
// The output table preserves the input order of phenopacketPaths. Matching
// is substring containment against the basename of each pool path, and ties
// are resolved by taking the first match in pool order.
func (r *Resolver) Resolve(ctx context.Context, phenopacketPaths, vcfPool []string, sampleID string) (liribatch.ResolutionResult, error) {
	r.logger.Info("Processing %d phenopacket(s)", len(phenopacketPaths))

	var result liribatch.ResolutionResult
	for _, ppath := range phenopacketPaths {
		record, err := r.loader.Load(ctx, ppath)
		if err != nil {
			return liribatch.ResolutionResult{}, err
		}

		if sampleID != "" {
			if record.SampleID != sampleID {
				continue
			}
			result.RequestedFound = true
		}

		vcfPath, err := matchVCF(record, vcfPool)
		if err != nil {
			return liribatch.ResolutionResult{}, err
		}
		r.logger.Verbose("Matched sample %s to %s", record.SampleID, vcfPath)

		result.Entries = append(result.Entries, liribatch.ResolvedEntry{
			SampleID:        record.SampleID,
			PhenopacketPath: record.Path,
			VCFPath:         vcfPath,
		})

		if result.RequestedFound {
			break
		}
	}

	return result, nil
}

// matchVCF finds the VCF for one record: the first pool path, in discovery
// order, whose basename contains the referenced file name as a substring.
// Substring containment rather than exact match tolerates path-prefix and
// extension variation. Zero matches is fatal.
func matchVCF(record phenopacket.Record, vcfPool []string) (string, error) {
	for _, vcfPath := range vcfPool {
		if strings.Contains(path.Base(vcfPath), record.VCFName) {
			return vcfPath, nil
		}
	}
	return "", fmt.Errorf("couldn't find %s referred to by %s: %w",
		record.VCFName, record.Path, liribatch.ErrUnresolvedReference)
}
