package liribatch

import (
	"errors"
	"fmt"
)

// TranscriptDatabases lists the transcript model sets LIRICAL accepts.
var TranscriptDatabases = []string{"UCSC", "Ensembl", "RefSeq"}

// RunConfig contains all parameters needed for one pipeline invocation.
type RunConfig struct {
	// PhenopacketPaths are cloud paths of phenopacket JSON files to process.
	// Each path may contain wildcards (*).
	PhenopacketPaths []string

	// VCFPaths are cloud paths containing the single-sample VCFs referenced
	// by the phenopackets. Each path may contain wildcards (*).
	VCFPaths []string

	// OutputDir is the cloud directory where LIRICAL output is written.
	OutputDir string

	// LiricalDataDir is the LIRICAL reference data directory.
	LiricalDataDir string

	// ExomiserDataDir is the Exomiser reference data directory.
	ExomiserDataDir string

	// SampleID optionally restricts processing to a single sample id.
	SampleID string

	// MinDiff is the minimum number of differential diagnoses to show in
	// the HTML output regardless of post-test probability. Nil if unset.
	// Mutually exclusive with Threshold.
	MinDiff *int

	// Threshold is the post-test probability threshold as a percentage.
	// Nil if unset. Mutually exclusive with MinDiff.
	Threshold *float64

	// TranscriptDB selects which transcript models to use (UCSC, Ensembl
	// or RefSeq). Empty means the LIRICAL default.
	TranscriptDB string

	// Orphanet enables annotation data from Orphanet.
	Orphanet bool

	// UseGlobal runs LIRICAL with the --global flag.
	UseGlobal bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if len(c.PhenopacketPaths) == 0 {
		errs = append(errs, fmt.Errorf("at least one phenopacket path is required: %w", ErrInvalidConfig))
	}

	if len(c.VCFPaths) == 0 {
		errs = append(errs, fmt.Errorf("at least one --vcf path is required: %w", ErrInvalidConfig))
	}

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("output dir is required: %w", ErrInvalidConfig))
	}

	if c.LiricalDataDir == "" {
		errs = append(errs, fmt.Errorf("LIRICAL data dir is required: %w", ErrInvalidConfig))
	}

	if c.ExomiserDataDir == "" {
		errs = append(errs, fmt.Errorf("Exomiser data dir is required: %w", ErrInvalidConfig))
	}

	if c.MinDiff != nil && c.Threshold != nil {
		errs = append(errs, fmt.Errorf("mindiff and threshold are mutually exclusive: %w", ErrInvalidConfig))
	}

	if c.TranscriptDB != "" && !validTranscriptDB(c.TranscriptDB) {
		errs = append(errs, fmt.Errorf("unknown transcript database %q (expected one of %v): %w",
			c.TranscriptDB, TranscriptDatabases, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AllStoragePaths returns every cloud path the run touches. The storage
// classifier uses this set to enforce that a run never spans backends.
// Unset directory fields are omitted.
func (c *RunConfig) AllStoragePaths() []string {
	paths := make([]string, 0, len(c.PhenopacketPaths)+len(c.VCFPaths)+3)
	for _, dir := range []string{c.LiricalDataDir, c.ExomiserDataDir, c.OutputDir} {
		if dir != "" {
			paths = append(paths, dir)
		}
	}
	paths = append(paths, c.PhenopacketPaths...)
	paths = append(paths, c.VCFPaths...)
	return paths
}

func validTranscriptDB(db string) bool {
	for _, known := range TranscriptDatabases {
		if db == known {
			return true
		}
	}
	return false
}

// ResolvedEntry is a validated (sample, phenopacket, VCF) triple. VCFPath is
// guaranteed to be a discovered VCF whose basename contains the file name the
// phenopacket referenced.
type ResolvedEntry struct {
	SampleID        string
	PhenopacketPath string
	VCFPath         string
}

// ResolutionResult is the sole output artifact of the resolution engine:
// an ordered table of resolved entries, one per processed phenopacket.
type ResolutionResult struct {
	// Entries preserves the discovery order of the phenopacket paths,
	// modulo records skipped by the sample filter.
	Entries []ResolvedEntry

	// RequestedFound reports whether the requested sample id (if any)
	// matched a phenopacket. Always false when no filter was requested.
	RequestedFound bool
}
