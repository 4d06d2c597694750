package liribatch

// Logger is the logging surface every component receives. Implementations
// must be safe for concurrent use.
type Logger interface {
	// Verbose logs diagnostic detail, emitted only in verbose mode.
	Verbose(format string, args ...interface{})

	// Info logs progress messages, always emitted.
	Info(format string, args ...interface{})

	// Error logs failures, always emitted.
	Error(format string, args ...interface{})
}
