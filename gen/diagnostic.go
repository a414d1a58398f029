package gen

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Severity is the severity of a diagnostic.
type Severity int8

const (
	// SeverityError indicates a diagnostic that fails compilation or generation.
	SeverityError Severity = iota
	// SeverityWarning indicates a suspicious but non-fatal condition.
	SeverityWarning
	// SeverityInfo indicates an informational diagnostic.
	SeverityInfo
	// SeverityHint indicates a stylistic suggestion.
	SeverityHint
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity. It is case-insensitive.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	default:
		return 0, zerr.With(ErrUnknownSeverity, "severity", s)
	}
}

// Diagnostic IDs reserved for the compilation layer. Diagnostics carrying
// these IDs belong to the platform, not to the generator under test.
const (
	// PlatformParseID is the ID of parse error diagnostics.
	PlatformParseID = "GOPARSE"
	// PlatformTypeID is the ID of type check error diagnostics.
	PlatformTypeID = "GOTYPE"
)

// Diagnostic is a single message produced by the compilation layer or by a
// generator during a run.
type Diagnostic struct {
	ID       string
	Severity Severity
	Message  string
	// Pos is a "file:line:col" location, empty when the diagnostic has no position.
	Pos string
}

// IsPlatform reports whether the diagnostic was produced by the compilation
// layer rather than by the generator under test.
func (d Diagnostic) IsPlatform() bool {
	return d.ID == PlatformParseID || d.ID == PlatformTypeID
}

// String formats the diagnostic for reports.
func (d Diagnostic) String() string {
	if d.Pos == "" {
		return fmt.Sprintf("%s [%s] %s", d.ID, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", d.ID, d.Severity, d.Pos, d.Message)
}
