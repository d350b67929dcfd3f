package derr

import (
	"fmt"
	"strings"
)

// Severity is the weighted importance of a log record. Weights are spaced
// so callers can define intermediate levels of their own; filtering and
// the syslog priority mapping both go by numeric order.
type Severity int

const (
	LevelDebug Severity = 10
	LevelInfo  Severity = 20
	LevelWarn  Severity = 30
	LevelError Severity = 40
	LevelFatal Severity = 50
)

// String returns the level tag rendered into records. Severities outside
// the known set render as "LOG".
func (s Severity) String() string {
	switch s {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "LOG"
	}
}

// ParseSeverity converts a level name into its Severity. Matching is
// case-insensitive and accepts "warning" as an alias for WARN.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

const colorReset = "\x1b[0m"

// color returns the ANSI sequence opening a console line at this severity.
func (s Severity) color() string {
	switch s {
	case LevelDebug:
		return "\x1b[2m"
	case LevelInfo:
		return "\x1b[0m"
	case LevelWarn:
		return "\x1b[33m"
	case LevelError:
		return "\x1b[31m"
	case LevelFatal:
		return "\x1b[1;31m"
	default:
		return "\x1b[0m"
	}
}
