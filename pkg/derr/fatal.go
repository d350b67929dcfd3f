package derr

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Termination hooks. Tests swap these to walk the fatal path without
// killing the test process.
var (
	osExit = os.Exit

	// abort raises SIGABRT with the default disposition restored, so the
	// process dies by signal and supervisors can tell it apart from a
	// status exit. The trailing exit only runs if delivery failed.
	abort = func() {
		signal.Reset(unix.SIGABRT)
		_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
		os.Exit(2)
	}
)

// Die emits a FATAL record with a backtrace, flushes all sinks and
// terminates the process with a failure status. It never returns.
func (l *Logger) Die(format string, args ...any) {
	l.Log(LevelFatal, format, args...)
	l.Flush()
	osExit(1)
}

// DieErrno is Die with an OS error code attached to the record.
func (l *Logger) DieErrno(errnum int, format string, args ...any) {
	l.LogErrno(LevelFatal, errnum, format, args...)
	l.Flush()
	osExit(1)
}

// Assert checks a runtime invariant. A true condition is a complete no-op:
// no formatting, no locking, no flush. A false condition emits a FATAL
// record, flushes and aborts the process via SIGABRT rather than an exit
// status, making the death core-dump eligible.
func (l *Logger) Assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	l.Log(LevelFatal, "assert failed: "+format, args...)
	l.Flush()
	abort()
}

// Try guards a call that signals failure by returning -1, the convention
// of the raw system-call wrappers. Any other value is a pure no-op. On -1
// it behaves exactly like DieErrno, naming the attempted operation and
// carrying the errno extracted from err:
//
//	fd, err := unix.Open(path, unix.O_RDONLY, 0)
//	derr.Try("open "+path, fd, err)
func (l *Logger) Try(desc string, ret int, err error) {
	if ret != -1 {
		return
	}
	l.DieErrno(Errno(err), "%s failed", desc)
}
