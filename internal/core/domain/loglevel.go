package domain

// LogLevel is the severity of a vertex log message.
type LogLevel int8

const (
	// LogLevelInfo is an informational message.
	LogLevelInfo LogLevel = iota
	// LogLevelWarn is a warning.
	LogLevelWarn
	// LogLevelError is an error message.
	LogLevelError
)

// String returns the uppercase name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
