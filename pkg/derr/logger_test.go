package derr

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

// newTestLogger returns an isolated logger writing to a buffer, with color
// disabled so assertions see plain text.
func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := New()
	buf := &bytes.Buffer{}
	l.SetConsole(buf)
	l.EnableColor(false)
	return l, buf
}

func TestConsoleLineFormat(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetProgramName("apptest")

	l.Infof("hello %s", "world")

	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] apptest: hello world\n$`)
	if !re.MatchString(buf.String()) {
		t.Fatalf("unexpected console line: %q", buf.String())
	}
}

func TestLevelTags(t *testing.T) {
	tags := map[Severity]string{
		LevelDebug: "[DEBUG]",
		LevelInfo:  "[INFO]",
		LevelWarn:  "[WARN]",
		LevelError: "[ERROR]",
		LevelFatal: "[FATAL]",
	}
	for sev, tag := range tags {
		l, buf := newTestLogger(t)
		l.Log(sev, "probe")
		if !strings.Contains(buf.String(), tag) {
			t.Fatalf("severity %v: expected tag %s in output, got: %q", sev, tag, buf.String())
		}
	}
}

func TestMinLevelFiltering(t *testing.T) {
	levels := []Severity{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
	for _, min := range levels {
		for _, sev := range levels {
			l, buf := newTestLogger(t)
			l.SetMinLevel(min)

			l.Log(sev, "probe")

			emitted := buf.Len() > 0
			want := sev >= min
			if emitted != want {
				t.Fatalf("min=%v sev=%v: emitted=%v, want %v", min, sev, emitted, want)
			}
		}
	}
}

func TestUnknownSeverityRendersAsLog(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Log(Severity(25), "odd level")

	if !strings.Contains(buf.String(), "[LOG]") {
		t.Fatalf("expected [LOG] tag for unknown severity, got: %q", buf.String())
	}
}

func TestProgramNamePlaceholder(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Infof("unnamed")
	if !strings.Contains(buf.String(), "[INFO] program: unnamed") {
		t.Fatalf("expected placeholder program name, got: %q", buf.String())
	}

	buf.Reset()
	l.SetProgramName("renamed")
	l.Infof("named")
	if !strings.Contains(buf.String(), "[INFO] renamed: named") {
		t.Fatalf("expected configured program name, got: %q", buf.String())
	}
}

func TestErrnoDetailRendering(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetProgramName("gate")

	l.ErrorErrno(2, "open failed")

	out := buf.String()
	if !strings.Contains(out, "gate: open failed (errno=2)") {
		t.Fatalf("expected errno suffix in record, got: %q", out)
	}
	if !strings.Contains(out, "\n        -> no such file or directory\n") {
		t.Fatalf("expected errno description line, got: %q", out)
	}
}

func TestErrnoDetailDisabled(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetIncludeErrnoDetails(false)

	l.ErrorErrno(2, "open failed")

	out := buf.String()
	if strings.Contains(out, "errno") || strings.Contains(out, "->") {
		t.Fatalf("errno rendering present with details disabled: %q", out)
	}
}

func TestRecordWithoutErrnoHasNoDetail(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Errorf("plain failure")

	out := buf.String()
	if strings.Contains(out, "errno") || strings.Contains(out, "->") {
		t.Fatalf("errno rendering present on plain record: %q", out)
	}
}

func TestColorToggle(t *testing.T) {
	l, buf := newTestLogger(t)
	l.EnableColor(true)

	l.Warnf("tinted")
	if !strings.Contains(buf.String(), "\x1b[33m") || !strings.Contains(buf.String(), "\x1b[0m") {
		t.Fatalf("expected ANSI sequences in colored output, got: %q", buf.String())
	}

	buf.Reset()
	l.EnableColor(false)
	l.Warnf("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("ANSI sequence present with color disabled: %q", buf.String())
	}
}

func TestColorNeverReachesFileSink(t *testing.T) {
	l, buf := newTestLogger(t)
	l.EnableColor(true)
	file := &bytes.Buffer{}
	l.SetLogFile(file)

	l.ErrorErrno(13, "denied")

	if !strings.Contains(buf.String(), "\x1b[31m") {
		t.Fatalf("expected colored console output, got: %q", buf.String())
	}
	if strings.Contains(file.String(), "\x1b[") {
		t.Fatalf("ANSI sequence leaked into file sink: %q", file.String())
	}
	if !strings.Contains(file.String(), "(errno=13)\n        -> permission denied\n") {
		t.Fatalf("unexpected file record: %q", file.String())
	}
}

func TestFileSinkFanout(t *testing.T) {
	l, buf := newTestLogger(t)
	file := &bytes.Buffer{}
	l.SetLogFile(file)

	l.Infof("mirrored")

	if !strings.Contains(buf.String(), "mirrored") {
		t.Fatalf("record missing from console: %q", buf.String())
	}
	if !strings.Contains(file.String(), "mirrored") {
		t.Fatalf("record missing from file sink: %q", file.String())
	}

	l.SetLogFile(nil)
	l.Infof("console only")
	if strings.Contains(file.String(), "console only") {
		t.Fatalf("file sink still receiving records after removal: %q", file.String())
	}
}

// opRecorder appends its tag to a shared sequence on every write, exposing
// the order sinks were touched in.
type opRecorder struct {
	ops *[]string
	tag string
}

func (o opRecorder) Write(p []byte) (int, error) {
	*o.ops = append(*o.ops, o.tag)
	return len(p), nil
}

func TestFanoutOrder(t *testing.T) {
	var ops []string
	fake := &fakeSyslog{ops: &ops}
	swapDialer(t, func(string) (syslogger, error) { return fake, nil })

	l := New()
	l.EnableColor(false)
	l.SetConsole(opRecorder{ops: &ops, tag: "console"})
	l.SetLogFile(opRecorder{ops: &ops, tag: "file"})
	l.UseSyslog(true)

	l.Infof("ordered")

	want := []string{"console", "file", "syslog"}
	if len(ops) != len(want) {
		t.Fatalf("expected %d sink writes, got %v", len(want), ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("sink order %v, want %v", ops, want)
		}
	}
}

func TestUTCTimestampMarker(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetTimestampUTC(true)

	l.Infof("in utc")
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z `).MatchString(buf.String()) {
		t.Fatalf("expected Z-suffixed UTC timestamp, got: %q", buf.String())
	}

	buf.Reset()
	l.SetTimestampUTC(false)
	l.Infof("in local time")
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3} `).MatchString(buf.String()) {
		t.Fatalf("expected bare local timestamp, got: %q", buf.String())
	}
}

func TestTimestampMonotonic(t *testing.T) {
	l, buf := newTestLogger(t)

	for i := 0; i < 5; i++ {
		l.Infof("tick %d", i)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	var prev time.Time
	for i, line := range lines {
		ts, err := time.Parse("2006-01-02T15:04:05.000", line[:23])
		if err != nil {
			t.Fatalf("line %d: cannot parse timestamp from %q: %v", i, line, err)
		}
		if ts.Before(prev) {
			t.Fatalf("timestamp went backwards at line %d: %v after %v", i, ts, prev)
		}
		prev = ts
	}
}

func TestMessageTruncation(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Infof("%s", strings.Repeat("x", maxMessageLen+500))

	out := strings.TrimSuffix(buf.String(), "\n")
	idx := strings.Index(out, ": ")
	if idx < 0 {
		t.Fatalf("malformed record: %q", out)
	}
	msg := out[idx+2:]
	if len(msg) != maxMessageLen {
		t.Fatalf("message length %d after truncation, want %d", len(msg), maxMessageLen)
	}
}

func TestSetConsoleNilIgnored(t *testing.T) {
	l, buf := newTestLogger(t)

	l.SetConsole(nil)
	l.Infof("still routed")

	if !strings.Contains(buf.String(), "still routed") {
		t.Fatalf("console sink lost after nil SetConsole: %q", buf.String())
	}
}

func TestFileSinkFlushedPerWrite(t *testing.T) {
	l, _ := newTestLogger(t)
	var raw bytes.Buffer
	bw := bufio.NewWriterSize(&raw, 1<<16)
	l.SetLogFile(bw)

	l.Infof("durable")

	if !strings.Contains(raw.String(), "durable") {
		t.Fatalf("file sink not flushed after write: %q", raw.String())
	}
}

func TestFlushPushesBufferedConsole(t *testing.T) {
	l := New()
	l.EnableColor(false)
	var raw bytes.Buffer
	bw := bufio.NewWriterSize(&raw, 1<<16)
	l.SetConsole(bw)

	l.Infof("held back")
	if raw.Len() != 0 {
		t.Fatalf("buffered console flushed prematurely: %q", raw.String())
	}

	l.Flush()
	if !strings.Contains(raw.String(), "held back") {
		t.Fatalf("Flush did not drain console buffer: %q", raw.String())
	}
}

func TestConcurrentEmissions(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetProgramName("concurrent")

	const goroutines = 8
	const perGoroutine = 25

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				l.Infof("worker %d line %d", id, j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != goroutines*perGoroutine {
		t.Fatalf("expected %d lines, got %d", goroutines*perGoroutine, len(lines))
	}
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3} \[INFO\] concurrent: worker \d+ line \d+$`)
	for i, line := range lines {
		if !re.MatchString(line) {
			t.Fatalf("line %d corrupted by interleaving: %q", i, line)
		}
	}
}

func TestEndToEndWarnThreshold(t *testing.T) {
	l, buf := newTestLogger(t)
	l.SetProgramName("e2e")
	l.SetMinLevel(LevelWarn)

	l.Debugf("invisible detail")
	l.ErrorErrno(2, "cannot open state file")

	out := buf.String()
	if strings.Contains(out, "invisible detail") {
		t.Fatalf("debug record slipped past threshold: %q", out)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected record line plus errno line, got %d lines: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "e2e: cannot open state file (errno=2)") {
		t.Fatalf("unexpected record line: %q", lines[0])
	}
	if lines[1] != "        -> no such file or directory" {
		t.Fatalf("unexpected errno line: %q", lines[1])
	}
}
