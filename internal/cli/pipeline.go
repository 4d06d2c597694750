package cli

import (
	"context"
	"fmt"

	"github.com/seqops/liribatch/internal/resolve"
	"github.com/seqops/liribatch/internal/storage"
	"github.com/seqops/liribatch/pkg/liribatch"
)

// resolveCohort runs the full resolution flow for a validated config:
// classify the run's paths, open the matching backend, expand wildcard
// patterns, and match every phenopacket to its VCF.
//
// The core resolver reports a requested-but-absent sample id as an empty
// table; the CLI boundary converts that into ErrSampleNotFound so the
// process exits with a distinct code.
func resolveCohort(ctx context.Context, cfg *liribatch.RunConfig, logger liribatch.Logger) (liribatch.ResolutionResult, error) {
	scheme, err := storage.Classify(cfg.AllStoragePaths())
	if err != nil {
		return liribatch.ResolutionResult{}, err
	}
	logger.Verbose("Storage backend: %s", scheme)

	bucket, err := storage.Open(ctx, scheme, logger)
	if err != nil {
		return liribatch.ResolutionResult{}, err
	}

	return resolveWithBucket(ctx, bucket, cfg, logger)
}

// resolveWithBucket is the backend-agnostic tail of resolveCohort, split
// out so it can run against an in-memory bucket.
func resolveWithBucket(ctx context.Context, bucket storage.Bucket, cfg *liribatch.RunConfig, logger liribatch.Logger) (liribatch.ResolutionResult, error) {
	resolver := resolve.New(bucket, logger)

	phenopacketPaths, err := resolver.ExpandPaths(ctx, cfg.PhenopacketPaths)
	if err != nil {
		return liribatch.ResolutionResult{}, err
	}
	logger.Verbose("Discovered %d phenopacket(s)", len(phenopacketPaths))

	vcfPool, err := resolver.ExpandPaths(ctx, cfg.VCFPaths)
	if err != nil {
		return liribatch.ResolutionResult{}, err
	}
	logger.Verbose("Discovered %d VCF(s)", len(vcfPool))

	result, err := resolver.Resolve(ctx, phenopacketPaths, vcfPool, cfg.SampleID)
	if err != nil {
		return liribatch.ResolutionResult{}, err
	}

	if cfg.SampleID != "" && !result.RequestedFound {
		return liribatch.ResolutionResult{}, fmt.Errorf(
			"sample %q not found in any phenopacket: %w", cfg.SampleID, liribatch.ErrSampleNotFound)
	}

	return result, nil
}
