package derr

import "log/syslog"

// syslogger is the slice of the system-log connection the fanout needs.
// Emission and teardown go through it so tests can stand in a recorder
// without a running syslog daemon.
type syslogger interface {
	Debug(m string) error
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
	Close() error
}

// dialSyslog opens the system-log channel with the user facility and the
// given tag. Swappable so tests can count opens and closes.
var dialSyslog = func(tag string) (syslogger, error) {
	return syslog.New(syslog.LOG_USER|syslog.LOG_INFO, tag)
}

// sendSyslog writes one line at the priority mapped from sev. Severities
// outside the known set go out at info priority. Delivery errors are
// swallowed; emission never surfaces failures.
func sendSyslog(w syslogger, sev Severity, line string) {
	send := w.Info
	switch sev {
	case LevelDebug:
		send = w.Debug
	case LevelWarn:
		send = w.Warning
	case LevelError:
		send = w.Err
	case LevelFatal:
		send = w.Crit
	}
	_ = send(line)
}
