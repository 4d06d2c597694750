package liribatch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/seqops/liribatch/pkg/liribatch"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, liribatch.ExitSuccess},
		{"general error", errors.New("something went wrong"), liribatch.ExitGeneralError},
		{"invalid config", liribatch.ErrInvalidConfig, liribatch.ExitConfigError},
		{"path not found", liribatch.ErrPathNotFound, liribatch.ExitPathNotFound},
		{"missing sample id", liribatch.ErrMissingSampleID, liribatch.ExitRecordInvalid},
		{"missing file reference", liribatch.ErrMissingFileReference, liribatch.ExitRecordInvalid},
		{"unresolved reference", liribatch.ErrUnresolvedReference, liribatch.ExitUnresolvedReference},
		{"access denied", liribatch.ErrAccessDenied, liribatch.ExitAccessDenied},
		{"sample not found", liribatch.ErrSampleNotFound, liribatch.ExitSampleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := liribatch.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("gs://bucket/missing.json: %w", liribatch.ErrPathNotFound)
	if got := liribatch.ExitCodeForError(wrapped); got != liribatch.ExitPathNotFound {
		t.Errorf("ExitCodeForError(wrapped) = %d, want %d", got, liribatch.ExitPathNotFound)
	}

	doubleWrapped := fmt.Errorf("resolving cohort: %w", wrapped)
	if got := liribatch.ExitCodeForError(doubleWrapped); got != liribatch.ExitPathNotFound {
		t.Errorf("ExitCodeForError(doubleWrapped) = %d, want %d", got, liribatch.ExitPathNotFound)
	}
}

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag --foo"), liribatch.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), liribatch.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), liribatch.ExitUsageError},
		{"requires args", errors.New("requires at least 1 arg(s), only received 0"), liribatch.ExitUsageError},
		{"mutually exclusive flags", errors.New("if any flags in the group [mindiff threshold] are set none of the others can be; [mindiff threshold] were all set"), liribatch.ExitUsageError},
		{"required flag", errors.New("required flag \"vcf\" not set"), liribatch.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--threshold\""), liribatch.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := liribatch.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
