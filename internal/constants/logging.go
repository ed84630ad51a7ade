package constants

// LogLevel represents the logger levels accepted in the sdkmock config
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}

// Valid reports whether l is one of the known levels. Matching is exact.
func (l LogLevel) Valid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}
