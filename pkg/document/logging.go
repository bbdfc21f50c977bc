package document

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Logging holds the logging settings for the consuming server.
type Logging struct {
	Level   LogLevel `json:"level" yaml:"level"`                           // Minimum severity to emit
	Logfile string   `json:"logfile,omitempty" yaml:"logfile,omitempty"`   // Destination path (empty means stderr)
}

// LogLevel is an ordered severity enumeration.
type LogLevel string

// Log levels in ascending severity.
const (
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

// LogLevels lists the recognized levels in ascending severity order.
var LogLevels = []LogLevel{
	LogLevelDebug,
	LogLevelInfo,
	LogLevelWarning,
	LogLevelError,
	LogLevelCritical,
}

// String returns the string representation of a LogLevel.
func (l LogLevel) String() string {
	return string(l)
}

// Valid reports whether the level is one of the recognized values.
func (l LogLevel) Valid() bool {
	return l.Severity() >= 0
}

// Severity returns the ordinal position of the level, DEBUG being the
// lowest. Unrecognized levels return -1.
func (l LogLevel) Severity() int {
	for i, level := range LogLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// AtLeast reports whether the level is at or above the given threshold.
func (l LogLevel) AtLeast(threshold LogLevel) bool {
	return l.Severity() >= threshold.Severity() && l.Valid() && threshold.Valid()
}

// ZerologLevel maps the document level onto the zerolog scale.
// Unrecognized levels map to info.
func (l LogLevel) ZerologLevel() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarning:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelCritical:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLogLevel parses a level name case-insensitively. WARN is accepted
// as an alias for WARNING.
func ParseLogLevel(s string) (LogLevel, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "WARN" {
		normalized = string(LogLevelWarning)
	}
	level := LogLevel(normalized)
	if !level.Valid() {
		return "", fmt.Errorf("unknown log level %q (expected one of %v)", s, LogLevels)
	}
	return level, nil
}
