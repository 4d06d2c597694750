package liribatch

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess             = 0  // Resolution completed successfully
	ExitGeneralError        = 1  // Unknown or unclassified error
	ExitUsageError          = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic               = 3  // Internal panic (unexpected crash)
	ExitConfigError         = 10 // Invalid configuration (mixed or unknown storage prefixes, bad flag combos)
	ExitPathNotFound        = 11 // A configured path pattern expanded to nothing
	ExitRecordInvalid       = 12 // A phenopacket is missing required structure
	ExitUnresolvedReference = 13 // A phenopacket references a VCF that was not discovered
	ExitAccessDenied        = 14 // Storage backend authentication or permission failure
	ExitSampleNotFound      = 15 // The requested sample id matched no phenopacket in the cohort
)

const (
	// DefaultLiricalDataDir is the default cloud path of the LIRICAL reference
	// data directory generated by the LIRICAL download command.
	DefaultLiricalDataDir = "gs://lirical-reference-data/LIRICAL/data"

	// DefaultExomiserDataDir is the default cloud path of the Exomiser
	// reference data directory required by LIRICAL.
	DefaultExomiserDataDir = "gs://lirical-reference-data/exomiser-cli-13.0.0/2109_hg38"

	// FileURIPrefix is the local-file URI prefix phenopackets use when
	// referencing their VCF by name. It is stripped during extraction.
	FileURIPrefix = "file:///"
)
