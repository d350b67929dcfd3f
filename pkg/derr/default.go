package derr

import "io"

// Default is the process-wide logger the package-level functions delegate
// to. Most programs configure it once at startup and never touch another
// instance; code that needs isolation, tests above all, constructs its own
// with New.
var Default = New()

// SetProgramName sets the record label on the default logger.
func SetProgramName(name string) { Default.SetProgramName(name) }

// SetMinLevel sets the severity threshold on the default logger.
func SetMinLevel(min Severity) { Default.SetMinLevel(min) }

// EnableColor toggles console ANSI color on the default logger.
func EnableColor(enabled bool) { Default.EnableColor(enabled) }

// SetTimestampUTC selects UTC timestamps on the default logger.
func SetTimestampUTC(utc bool) { Default.SetTimestampUTC(utc) }

// SetIncludeErrnoDetails toggles errno rendering on the default logger.
func SetIncludeErrnoDetails(enabled bool) { Default.SetIncludeErrnoDetails(enabled) }

// SetLogFile sets or clears the secondary file sink on the default logger.
func SetLogFile(w io.Writer) { Default.SetLogFile(w) }

// SetConsole redirects the default logger's console sink.
func SetConsole(w io.Writer) { Default.SetConsole(w) }

// UseSyslog connects or disconnects the default logger's system-log sink.
func UseSyslog(enabled bool) { Default.UseSyslog(enabled) }

// Log emits a record at the given severity through the default logger.
func Log(sev Severity, format string, args ...any) { Default.Log(sev, format, args...) }

// LogErrno emits a record with an OS error code through the default logger.
func LogErrno(sev Severity, errnum int, format string, args ...any) {
	Default.LogErrno(sev, errnum, format, args...)
}

// Flush flushes the default logger's console and file sinks.
func Flush() { Default.Flush() }

// Debugf logs a debugging detail through the default logger.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Infof logs an informational message through the default logger.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warnf logs a warning through the default logger.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Errorf logs an error through the default logger.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }

// DebugErrno logs a debugging detail with an OS error code through the
// default logger.
func DebugErrno(errnum int, format string, args ...any) { Default.DebugErrno(errnum, format, args...) }

// InfoErrno logs an informational message with an OS error code through
// the default logger.
func InfoErrno(errnum int, format string, args ...any) { Default.InfoErrno(errnum, format, args...) }

// WarnErrno logs a warning with an OS error code through the default
// logger.
func WarnErrno(errnum int, format string, args ...any) { Default.WarnErrno(errnum, format, args...) }

// ErrorErrno logs an error with an OS error code through the default
// logger.
func ErrorErrno(errnum int, format string, args ...any) { Default.ErrorErrno(errnum, format, args...) }

// Die emits a FATAL record through the default logger and terminates the
// process with a failure status.
func Die(format string, args ...any) { Default.Die(format, args...) }

// DieErrno is Die with an OS error code attached.
func DieErrno(errnum int, format string, args ...any) { Default.DieErrno(errnum, format, args...) }

// Assert checks a runtime invariant through the default logger, aborting
// the process when cond is false.
func Assert(cond bool, format string, args ...any) { Default.Assert(cond, format, args...) }

// Try guards a -1-on-failure call through the default logger.
func Try(desc string, ret int, err error) { Default.Try(desc, ret, err) }
