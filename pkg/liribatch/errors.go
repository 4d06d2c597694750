package liribatch

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := resolver.Resolve(ctx, paths, pool, "")
//	if errors.Is(err, liribatch.ErrUnresolvedReference) {
//	    // A phenopacket names a VCF that was never discovered
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid,
	// including mixed or unrecognized storage-backend prefixes.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPathNotFound indicates a configured path pattern expanded to zero
	// concrete paths.
	ErrPathNotFound = errors.New("path not found")

	// ErrMissingSampleID indicates a phenopacket lacks a subject id.
	ErrMissingSampleID = errors.New("missing sample id")

	// ErrMissingFileReference indicates a phenopacket lacks an htsFiles
	// entry with a VCF uri.
	ErrMissingFileReference = errors.New("missing VCF file reference")

	// ErrUnresolvedReference indicates a phenopacket's referenced VCF name
	// matched no discovered VCF path.
	ErrUnresolvedReference = errors.New("unresolved VCF reference")

	// ErrAccessDenied indicates a storage backend authentication or
	// permission failure.
	ErrAccessDenied = errors.New("storage access denied")

	// ErrSampleNotFound indicates the requested sample id matched no
	// phenopacket in the cohort. The resolution engine itself reports this
	// condition as an empty table; the CLI boundary raises this error so
	// scripts can tell it apart from a legitimately empty cohort.
	ErrSampleNotFound = errors.New("requested sample not found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrPathNotFound):
		return ExitPathNotFound
	case errors.Is(err, ErrMissingSampleID):
		return ExitRecordInvalid
	case errors.Is(err, ErrMissingFileReference):
		return ExitRecordInvalid
	case errors.Is(err, ErrUnresolvedReference):
		return ExitUnresolvedReference
	case errors.Is(err, ErrAccessDenied):
		return ExitAccessDenied
	case errors.Is(err, ErrSampleNotFound):
		return ExitSampleNotFound
	}

	// Cobra flag/argument errors surface as plain errors; classify them
	// by message so scripts see exit code 2 for CLI misuse.
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "arg(s)") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "flags in the group") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
