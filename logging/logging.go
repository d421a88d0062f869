// Package logging provides the single structured logger of the process.
// main registers it under services.ServiceLogger, where the client package
// looks it up, and passes it directly to its own tasks.
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger. It exists as its own type, rather than
// callers importing logrus directly, so the service locator has one
// well-known entry (services.ServiceLogger) and so the sink can be swapped
// without touching every call site.
type Logger struct {
	*log.Logger
}

// NewLogger creates a Logger writing leveled, field-structured output to
// stderr. level controls the minimum severity emitted.
func NewLogger(level log.Level) *Logger {
	l := log.New()
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return &Logger{Logger: l}
}

// WithFrame returns an entry pre-populated with the CAN identifier and
// byte length of a frame, the two fields nearly every frame-level log line
// in this module wants attached.
func (l *Logger) WithFrame(id uint32, length int) *log.Entry {
	return l.WithFields(log.Fields{"can_id": id, "len": length})
}
