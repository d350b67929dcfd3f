package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/R3DB0ii/derr/pkg/config"
	"github.com/R3DB0ii/derr/pkg/derr"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
)

// WatchCommand creates the watch command
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Emit heartbeat records while live-reloading logger settings from the config file",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Delay between heartbeat records",
				Value: 5 * time.Second,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return watch(ctx, c.String("config"), c.Duration("interval"))
		},
	}
}

// watch keeps a stream of records flowing through the default logger and
// re-applies the configuration file whenever it changes on disk or a
// SIGHUP arrives, so setting changes show up immediately in the output.
func watch(ctx context.Context, configPath string, interval time.Duration) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := cfg.Apply(derr.Default)
	if err != nil {
		return fmt.Errorf("applying config: %w", err)
	}

	// Signal handling - includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Nil channels block forever, so the loop below works unchanged when
	// the watcher could not be created.
	var events chan fsnotify.Event
	var watchErrs chan error
	watcher, werr := fsnotify.NewWatcher()
	if werr != nil {
		derr.Warnf("cannot create config file watcher: %v", werr)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				derr.Warnf("closing config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			derr.Warnf("cannot watch config file %s: %v", configPath, err)
		} else {
			derr.Infof("watching config file for changes: %s", configPath)
		}
		events = watcher.Events
		watchErrs = watcher.Errors
	}

	fmt.Println("Emitting heartbeats. Press Ctrl+C to stop, send SIGHUP or edit the config file to reload settings.")
	derr.Infof("watch started, heartbeat every %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	shutdown := func() {
		derr.Infof("shutting down")
		derr.Flush()
		if logFile != nil {
			logFile.Close()
		}
	}

	beat := 0
	for {
		select {
		case <-ctx.Done():
			shutdown()
			return nil

		case <-ticker.C:
			beat++
			switch beat % 4 {
			case 1:
				derr.Debugf("heartbeat %d", beat)
			case 2:
				derr.Infof("heartbeat %d", beat)
			case 3:
				derr.Warnf("heartbeat %d", beat)
			default:
				derr.ErrorErrno(int(syscall.ETIMEDOUT), "heartbeat %d", beat)
			}

		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				derr.Infof("received SIGHUP, reloading configuration")
				newFile, rerr := reloadSettings(configPath, logFile)
				if rerr != nil {
					derr.Errorf("reloading configuration: %v", rerr)
				} else {
					logFile = newFile
				}
			case syscall.SIGINT, syscall.SIGTERM:
				shutdown()
				return nil
			}

		case event, ok := <-events:
			if !ok {
				continue
			}
			// React to write, create, rename, and remove events (editors often use atomic writes)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				derr.Infof("config file changed (%s), reloading settings", event.Op)

				// For rename/remove events the file was likely replaced;
				// wait for the new one and re-add it to the watcher.
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)

					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						derr.Warnf("config file removed and not replaced, keeping current settings")
						continue
					}

					if err := watcher.Add(configPath); err != nil {
						derr.Warnf("re-watching config file: %v", err)
					}
				} else {
					// Small delay to ensure the file write is complete
					time.Sleep(100 * time.Millisecond)
				}

				newFile, rerr := reloadSettings(configPath, logFile)
				if rerr != nil {
					derr.Errorf("reloading configuration: %v", rerr)
				} else {
					logFile = newFile
				}
			}

		case err, ok := <-watchErrs:
			if !ok {
				continue
			}
			derr.Warnf("config file watcher error: %v", err)
		}
	}
}

// reloadSettings loads the configuration file again and swaps the default
// logger over to it. The old log file handle is closed only after the
// logger stopped referencing it; on error the old handle stays in place
// and is returned unchanged.
func reloadSettings(configPath string, oldFile *os.File) (*os.File, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return oldFile, fmt.Errorf("loading new config: %w", err)
	}

	newFile, err := cfg.Apply(derr.Default)
	if err != nil {
		return oldFile, fmt.Errorf("applying new config: %w", err)
	}

	if oldFile != nil {
		oldFile.Close()
	}

	derr.Infof("configuration reloaded")
	return newFile, nil
}
