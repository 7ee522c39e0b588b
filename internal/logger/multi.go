package logger

import (
	"errors"

	"github.com/harrison/operant/internal/models"
)

// SessionLogger is the subset of logging shared by console and file loggers.
type SessionLogger interface {
	LogSessionStart(path string)
	LogSessionResult(result models.SessionResult) error
	LogSummary(result models.BatchResult)
}

// MultiLogger fans every event out to several loggers.
type MultiLogger struct {
	loggers []SessionLogger
}

// NewMultiLogger creates a MultiLogger; nil loggers are ignored.
func NewMultiLogger(loggers ...SessionLogger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// LogSessionStart forwards to every logger.
func (m *MultiLogger) LogSessionStart(path string) {
	for _, l := range m.loggers {
		l.LogSessionStart(path)
	}
}

// LogSessionResult forwards to every logger and joins their errors.
func (m *MultiLogger) LogSessionResult(result models.SessionResult) error {
	var errs []error
	for _, l := range m.loggers {
		if err := l.LogSessionResult(result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSummary forwards to every logger.
func (m *MultiLogger) LogSummary(result models.BatchResult) {
	for _, l := range m.loggers {
		l.LogSummary(result)
	}
}
