package logging

// NullLogger discards everything. Used in tests and wherever a Logger is
// required but output is unwanted.
type NullLogger struct{}

// NewNullLogger creates a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}
