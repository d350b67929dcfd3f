package derr

// Package derr is a small leveled logging and fatal-error reporting
// facility for POSIX processes. One logical record fans out to up to three
// sinks: the console (stderr by default, always on), an optional caller
// owned file, and the system log.
//
// Key Features
//
//   - Five weighted severities (DEBUG, INFO, WARN, ERROR, FATAL) with a
//     mutable minimum-level filter applied before any formatting
//   - Errno-aware records: attach an OS error code and the rendered line
//     carries both the raw code and its translated description
//   - ANSI color on the console sink, toggleable at runtime
//   - ISO 8601 millisecond timestamps, local time or UTC
//   - Automatic backtrace on every FATAL record
//   - Fatal helpers with distinct exit semantics: Die (status exit),
//     Assert (SIGABRT), Try (guard for -1-returning calls)
//   - A package-level Default logger plus independent instances via New
//
// Non-Goals
//
//   - Structured / key-value records
//   - Asynchronous or buffered emission
//   - Log rotation or retention
//
// Basic Usage
//
//	import "github.com/R3DB0ii/derr/pkg/derr"
//
//	func main() {
//		derr.SetProgramName("mytool")
//		derr.SetMinLevel(derr.LevelInfo)
//
//		derr.Infof("starting up")
//		derr.Warnf("cache dir missing, recreating")
//
//		f, err := os.Open(path)
//		if err != nil {
//			derr.DieErrno(derr.Errno(err), "cannot open %s", path)
//		}
//		defer f.Close()
//	}
//
// Extra Sinks
//
//	// Mirror records into a file. The logger never closes it.
//	f, _ := os.OpenFile("mytool.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
//	derr.SetLogFile(f)
//
//	// And into syslog, tagged with the program name.
//	derr.UseSyslog(true)
//
// Fatal Helpers
//
// Die and DieErrno emit a FATAL record, flush every sink and exit with
// status 1. Assert does nothing when its condition holds; when it fails
// the process dies by SIGABRT, so supervisors and core-dump handlers see
// an abnormal termination instead of a clean exit. Try wraps the classic
// -1 convention of raw system calls:
//
//	fd, err := unix.Open(dev, unix.O_RDWR, 0)
//	derr.Try("open "+dev, fd, err)
//
// Thread Safety
//
// All exported functions and methods are safe for concurrent use. Level
// filtering reads an atomic and takes no lock; sink fanout holds one mutex
// per logger, so complete records from concurrent goroutines never
// interleave within a sink.
//
// Testing
//
// Tests construct their own instances with New and redirect the console
// sink to a bytes.Buffer via SetConsole, enabling assertions on rendered
// records without touching process-wide state.
