package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/R3DB0ii/derr/pkg/derr"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"
)

// Define styles using lipgloss
var (
	demoTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	demoSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214")).
				Margin(1, 0, 0, 0)
)

// DemoCommand creates the demo command
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Exercise the logger end to end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "Minimum severity to emit (debug, info, warn, error, fatal)",
				Value: "debug",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable ANSI color on the console sink",
			},
			&cli.BoolFlag{
				Name:  "utc",
				Usage: "Render timestamps in UTC",
			},
			&cli.BoolFlag{
				Name:  "no-errno",
				Usage: "Omit errno details from records that carry a code",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Mirror records into this file",
			},
			&cli.BoolFlag{
				Name:  "syslog",
				Usage: "Forward records to the system log",
			},
			&cli.BoolFlag{
				Name:  "try",
				Usage: "Finish with a failing guarded call (terminates the process)",
			},
			&cli.BoolFlag{
				Name:  "assert",
				Usage: "Finish with a failing assertion (aborts the process)",
			},
			&cli.BoolFlag{
				Name:  "die",
				Usage: "Finish with an unconditional fatal (terminates the process)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runDemo(c)
		},
	}
}

// runDemo walks the logger through its surface: leveled emission, errno
// records and, on request, one of the fatal finishers.
func runDemo(c *cli.Command) error {
	min, err := derr.ParseSeverity(c.String("level"))
	if err != nil {
		return fmt.Errorf("parsing level: %w", err)
	}

	derr.SetProgramName(filepath.Base(os.Args[0]))
	derr.SetMinLevel(min)
	derr.EnableColor(!c.Bool("no-color"))
	derr.SetTimestampUTC(c.Bool("utc"))
	derr.SetIncludeErrnoDetails(!c.Bool("no-errno"))

	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		derr.SetLogFile(f)
		defer derr.SetLogFile(nil)
	}

	if c.Bool("syslog") {
		derr.UseSyslog(true)
		defer derr.UseSyslog(false)
	}

	fmt.Println(demoTitleStyle.Render("derr demo"))

	fmt.Println(demoSectionStyle.Render("Leveled records"))
	derr.Debugf("debugging detail, dropped when the threshold is above debug")
	derr.Infof("demo starting up")
	derr.Warnf("something is off, but not blocking")
	derr.Errorf("something went wrong, carrying on anyway")

	fmt.Println(demoSectionStyle.Render("Errno-aware records"))
	if _, err := os.Open("/nonexistent/demo-input"); err != nil {
		derr.ErrorErrno(derr.Errno(err), "cannot open demo input")
	}

	switch {
	case c.Bool("try"):
		fmt.Println(demoSectionStyle.Render("Failing guarded call"))
		fd, err := unix.Open("/nonexistent/demo-device", unix.O_RDONLY, 0)
		derr.Try("open /nonexistent/demo-device", fd, err)
	case c.Bool("assert"):
		fmt.Println(demoSectionStyle.Render("Failing assertion"))
		x := 5
		derr.Assert(x == 10, "x should be 10, not %d", x)
	case c.Bool("die"):
		fmt.Println(demoSectionStyle.Render("Unconditional fatal"))
		derr.Die("nothing left to demonstrate")
	}

	derr.Infof("demo complete")
	return nil
}
