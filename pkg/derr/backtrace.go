package derr

import (
	"fmt"
	"runtime"
	"strings"
)

// maxBacktraceFrames bounds stack capture on fatal records.
const maxBacktraceFrames = 128

// backtraceSupported reports whether stack capture is available. The Go
// runtime always provides it; the constant keeps the capture site an
// explicit feature check rather than an implicit assumption.
const backtraceSupported = true

// captureStack walks the calling stack and renders one symbolized frame
// per line, at most maxBacktraceFrames deep. It returns the rendering and
// the number of program counters captured; n == 0 means no stack was
// available and nothing should be printed.
func captureStack() (string, int) {
	pcs := make([]uintptr, maxBacktraceFrames)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return "", 0
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s\n\t%s:%d +0x%x\n", frame.Function, frame.File, frame.Line, frame.PC-frame.Entry)
		} else {
			fmt.Fprintf(&b, "%#x\n", frame.PC)
		}
		if !more {
			break
		}
	}
	return b.String(), n
}
