package phenopacket

import (
	"fmt"
)

// RecordError represents a structured validation error for one phenopacket,
// with the storage path it was loaded from and an actionable hint.
type RecordError struct {
	Path    string // Storage path of the offending phenopacket
	Field   string // Field name (e.g., "subject.id", "htsFiles") if applicable
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
	Err     error  // Sentinel this error wraps, for errors.Is checks
}

// Error implements the error interface with rich formatting.
func (e *RecordError) Error() string {
	msg := fmt.Sprintf("phenopacket error in %s: %s", e.Path, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("phenopacket error in %s [field: %s]: %s", e.Path, e.Field, e.Message)
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap exposes the wrapped sentinel for errors.Is.
func (e *RecordError) Unwrap() error {
	return e.Err
}

const schemaHint = "Expected shape:\n" +
	"  {\n" +
	"    \"subject\": {\"id\": \"SAMPLE_ID\"},\n" +
	"    \"htsFiles\": [{\"uri\": \"file:///SAMPLE_ID.vcf.gz\"}]\n" +
	"  }"
