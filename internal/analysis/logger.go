package analysis

import "github.com/harrison/operant/internal/models"

// Logger receives analysis progress events.
// Implementations must be safe for concurrent use; sessions are analyzed in parallel.
type Logger interface {
	LogSessionStart(path string)
	LogSessionResult(result models.SessionResult) error
	LogSummary(result models.BatchResult)
}

type nopLogger struct{}

func (nopLogger) LogSessionStart(string) {}
func (nopLogger) LogSessionResult(models.SessionResult) error { return nil }
func (nopLogger) LogSummary(models.BatchResult) {}
