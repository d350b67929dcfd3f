package derr_test

import (
	"os"

	"github.com/R3DB0ii/derr/pkg/derr"
)

func Example() {
	derr.SetProgramName("exampled")
	derr.SetMinLevel(derr.LevelInfo)

	derr.Infof("service starting on %s", ":8080")
	derr.Warnf("cache directory missing, recreating")
}

func ExampleLogger() {
	l := derr.New()
	l.SetProgramName("worker")
	l.SetTimestampUTC(true)

	l.Infof("picked up job %d", 42)
}

func ExampleErrno() {
	if _, err := os.Open("/nonexistent/config"); err != nil {
		derr.ErrorErrno(derr.Errno(err), "cannot open config")
	}
}

func ExampleLogger_SetLogFile() {
	f, err := os.OpenFile("service.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		derr.DieErrno(derr.Errno(err), "opening log file")
	}
	defer f.Close()

	l := derr.New()
	l.SetLogFile(f)
	l.Infof("mirrored to console and file")
}
