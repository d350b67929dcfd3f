package derr

import "testing"

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		LevelDebug:   "DEBUG",
		LevelInfo:    "INFO",
		LevelWarn:    "WARN",
		LevelError:   "ERROR",
		LevelFatal:   "FATAL",
		Severity(99): "LOG",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", int(sev), got, want)
		}
	}
}

func TestSeverityWeights(t *testing.T) {
	weights := []struct {
		sev  Severity
		want int
	}{
		{LevelDebug, 10},
		{LevelInfo, 20},
		{LevelWarn, 30},
		{LevelError, 40},
		{LevelFatal, 50},
	}
	for _, w := range weights {
		if int(w.sev) != w.want {
			t.Fatalf("%v weighs %d, want %d", w.sev, int(w.sev), w.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{" fatal ", LevelFatal},
	}
	for _, c := range cases {
		got, err := ParseSeverity(c.in)
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseSeverity(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParseSeverity("loud"); err == nil {
		t.Fatal("expected error for unknown severity name")
	}
}
