package derr

import (
	"bytes"
	"fmt"
)

// maxMessageLen bounds the rendered message body. Longer messages are cut
// at the bound, never rejected.
const maxMessageLen = 2048

// record is one fully rendered emission, built before the sink lock is
// taken and discarded when the call returns. detail marks that the record
// carries an errno and errno rendering is enabled; with detail false the
// errnum and etext fields are ignored.
type record struct {
	sev    Severity
	ts     string
	msg    string
	detail bool
	errnum int
	etext  string
}

// formatMessage renders the caller's format string and truncates the
// result to maxMessageLen bytes. Truncation is silent.
func formatMessage(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}
	return msg
}

// consoleLine renders the record for the console sink. Color applies to
// the timestamp on the primary line and to the whole errno line; the
// payload in between stays uncolored so terminal copy-paste is clean.
func (rec record) consoleLine(prog string, color bool) []byte {
	c, r := "", ""
	if color {
		c, r = rec.sev.color(), colorReset
	}
	var b bytes.Buffer
	if rec.detail {
		fmt.Fprintf(&b, "%s%s%s [%s] %s: %s (errno=%d)\n", c, rec.ts, r, rec.sev, prog, rec.msg, rec.errnum)
		fmt.Fprintf(&b, "%s        -> %s%s\n", c, rec.etext, r)
	} else {
		fmt.Fprintf(&b, "%s%s%s [%s] %s: %s\n", c, rec.ts, r, rec.sev, prog, rec.msg)
	}
	return b.Bytes()
}

// fileLine renders the record for the file sink: the console layout
// without color, emitted as a single write.
func (rec record) fileLine(prog string) []byte {
	var b bytes.Buffer
	if rec.detail {
		fmt.Fprintf(&b, "%s [%s] %s: %s (errno=%d)\n        -> %s\n", rec.ts, rec.sev, prog, rec.msg, rec.errnum, rec.etext)
	} else {
		fmt.Fprintf(&b, "%s [%s] %s: %s\n", rec.ts, rec.sev, prog, rec.msg)
	}
	return b.Bytes()
}

// syslogLine renders the record for the system log, which stamps its own
// timestamp and priority: just the program, the message and any errno.
func (rec record) syslogLine(prog string) string {
	if rec.detail {
		return fmt.Sprintf("%s: %s (errno=%d) -> %s", prog, rec.msg, rec.errnum, rec.etext)
	}
	return fmt.Sprintf("%s: %s", prog, rec.msg)
}

// backtraceBlock renders the fatal-record stack dump for the console sink,
// or nil when no stack could be captured.
func (rec record) backtraceBlock(color bool) []byte {
	frames, n := captureStack()
	if n == 0 {
		return nil
	}
	c, r := "", ""
	if color {
		c, r = rec.sev.color(), colorReset
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%sBacktrace (%d frames):%s\n", c, n, r)
	b.WriteString(frames)
	b.WriteByte('\n')
	return b.Bytes()
}
