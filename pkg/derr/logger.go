package derr

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// defaultProgramName labels records until SetProgramName is called.
const defaultProgramName = "program"

// Logger fans leveled records out to a console sink, an optional file sink
// and an optional system-log sink. All methods are safe for concurrent use:
// scalar settings live in atomics so filtering never blocks, and a single
// mutex serializes sink writes so records from concurrent goroutines never
// interleave mid-line.
//
// The zero value is not usable; construct instances with New. Most programs
// use the package-level Default instead of their own instance.
type Logger struct {
	minLevel    atomic.Int32
	color       atomic.Bool
	utc         atomic.Bool
	errnoDetail atomic.Bool

	mu      sync.Mutex
	name    string
	console io.Writer
	file    io.Writer
	syslog  syslogger
}

// New returns a Logger with the startup defaults: everything at DEBUG and
// above goes to os.Stderr, color on, local-time timestamps, errno details
// included, no file sink, system log off.
func New() *Logger {
	l := &Logger{console: os.Stderr}
	l.minLevel.Store(int32(LevelDebug))
	l.color.Store(true)
	l.errnoDetail.Store(true)
	return l
}

// SetProgramName sets the label included in every record and used as the
// system-log tag on subsequent connections. An empty name renders as a
// placeholder.
func (l *Logger) SetProgramName(name string) {
	l.mu.Lock()
	l.name = name
	l.mu.Unlock()
}

// SetMinLevel sets the severity threshold. Records below it are dropped
// before any formatting happens.
func (l *Logger) SetMinLevel(min Severity) {
	l.minLevel.Store(int32(min))
}

// EnableColor toggles ANSI color sequences on the console sink. File and
// system-log output never carries color.
func (l *Logger) EnableColor(enabled bool) {
	l.color.Store(enabled)
}

// SetTimestampUTC selects UTC timestamps, marked with a trailing Z, over
// local time.
func (l *Logger) SetTimestampUTC(utc bool) {
	l.utc.Store(utc)
}

// SetIncludeErrnoDetails toggles errno rendering on records that carry an
// error code. With the toggle off such records render exactly like records
// without one.
func (l *Logger) SetIncludeErrnoDetails(enabled bool) {
	l.errnoDetail.Store(enabled)
}

// SetLogFile sets or replaces the secondary file sink; nil removes it.
// Every record written to it is flushed immediately. The Logger never
// closes the writer: the caller keeps ownership and must not close it
// while emissions may still be in flight.
func (l *Logger) SetLogFile(w io.Writer) {
	l.mu.Lock()
	l.file = w
	l.mu.Unlock()
}

// SetConsole redirects the console sink, normally os.Stderr. Passing nil
// is ignored; the console sink is always present.
func (l *Logger) SetConsole(w io.Writer) {
	if w == nil {
		return
	}
	l.mu.Lock()
	l.console = w
	l.mu.Unlock()
}

// UseSyslog connects or disconnects the system-log sink. Enabling while
// already connected is a no-op, as is disabling while disconnected, so the
// underlying channel opens and closes exactly once per state change. A
// failed connection leaves the sink off and is not reported.
func (l *Logger) UseSyslog(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if enabled {
		if l.syslog != nil {
			return
		}
		w, err := dialSyslog(l.progname())
		if err != nil {
			return
		}
		l.syslog = w
		return
	}
	if l.syslog == nil {
		return
	}
	_ = l.syslog.Close()
	l.syslog = nil
}

// progname returns the display label. Callers must hold mu.
func (l *Logger) progname() string {
	if l.name == "" {
		return defaultProgramName
	}
	return l.name
}

// Log renders a record at the given severity and writes it to every
// enabled sink. Logging never reports failures to the caller; a record
// below the minimum severity has no effect at all.
func (l *Logger) Log(sev Severity, format string, args ...any) {
	l.log(sev, false, 0, format, args...)
}

// LogErrno is Log with an OS error code attached to the record.
func (l *Logger) LogErrno(sev Severity, errnum int, format string, args ...any) {
	l.log(sev, true, errnum, format, args...)
}

func (l *Logger) log(sev Severity, hasErrno bool, errnum int, format string, args ...any) {
	if int32(sev) < l.minLevel.Load() {
		return
	}

	// Timestamp, message and errno text are rendered before taking the
	// lock; only sink writes happen inside it.
	rec := record{
		sev: sev,
		ts:  l.timestamp(time.Now()),
		msg: formatMessage(format, args...),
	}
	if hasErrno && l.errnoDetail.Load() {
		rec.detail = true
		rec.errnum = errnum
		rec.etext = strerrno(errnum)
	}

	l.emit(rec)
}

// emit writes one record to all enabled sinks in fixed order: console,
// then file, then system log, then the fatal backtrace. The whole fanout
// holds mu so concurrent records never interleave.
func (l *Logger) emit(rec record) {
	color := l.color.Load()

	l.mu.Lock()
	defer l.mu.Unlock()

	prog := l.progname()

	_, _ = l.console.Write(rec.consoleLine(prog, color))

	if l.file != nil {
		_, _ = l.file.Write(rec.fileLine(prog))
		flushWriter(l.file)
	}

	if l.syslog != nil {
		sendSyslog(l.syslog, rec.sev, rec.syslogLine(prog))
	}

	if rec.sev >= LevelFatal && backtraceSupported {
		if bt := rec.backtraceBlock(color); bt != nil {
			_, _ = l.console.Write(bt)
		}
	}
}

// timestamp renders now as ISO 8601 with millisecond precision. UTC mode
// appends the Z marker; local mode carries no offset.
func (l *Logger) timestamp(now time.Time) string {
	if l.utc.Load() {
		return now.UTC().Format("2006-01-02T15:04:05.000") + "Z"
	}
	return now.Format("2006-01-02T15:04:05.000")
}

// flusher is implemented by sinks that buffer in user space, such as
// *bufio.Writer. Plain *os.File writes are unbuffered and need no flush.
type flusher interface {
	Flush() error
}

func flushWriter(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}

// Flush pushes buffered output on the console and file sinks through to
// their destinations. The fatal-path helpers call it before terminating so
// operators keep the final records.
func (l *Logger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	flushWriter(l.console)
	if l.file != nil {
		flushWriter(l.file)
	}
}

// Debugf logs a debugging detail.
func (l *Logger) Debugf(format string, args ...any) {
	l.Log(LevelDebug, format, args...)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	l.Log(LevelInfo, format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.Log(LevelWarn, format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log(LevelError, format, args...)
}

// DebugErrno logs a debugging detail carrying an OS error code.
func (l *Logger) DebugErrno(errnum int, format string, args ...any) {
	l.LogErrno(LevelDebug, errnum, format, args...)
}

// InfoErrno logs an informational message carrying an OS error code.
func (l *Logger) InfoErrno(errnum int, format string, args ...any) {
	l.LogErrno(LevelInfo, errnum, format, args...)
}

// WarnErrno logs a warning carrying an OS error code.
func (l *Logger) WarnErrno(errnum int, format string, args ...any) {
	l.LogErrno(LevelWarn, errnum, format, args...)
}

// ErrorErrno logs an error carrying an OS error code.
func (l *Logger) ErrorErrno(errnum int, format string, args ...any) {
	l.LogErrno(LevelError, errnum, format, args...)
}
