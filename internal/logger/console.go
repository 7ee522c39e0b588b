// Package logger provides logging implementations for operant analysis runs.
//
// The logger package offers structured logging of analysis progress at the
// session and batch summary levels. Implementations are thread-safe, since
// sessions are analyzed concurrently, and satisfy analysis.Logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/operant/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs analysis progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns false when NO_COLOR is set.
func isTerminal(w io.Writer) bool {
	if w == nil || color.NoColor {
		return false
	}

	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs "[HH:MM:SS] [LEVEL] <message>" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	levelText := level
	if cl.colorOutput {
		levelText = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), levelText, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogSessionStart logs the start of a session at DEBUG level.
// Format: "[HH:MM:SS] Analyzing <file>"
func (cl *ConsoleLogger) LogSessionStart(path string) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	fmt.Fprintf(cl.writer, "[%s] Analyzing %s\n", timestamp(), filepath.Base(path))
}

// LogSessionResult logs a session outcome at INFO level, and each failed
// metric at WARN level.
// Format: "[HH:MM:SS] <file> (subject <s>): <ok>/<total> metrics ok"
func (cl *ConsoleLogger) LogSessionResult(result models.SessionResult) error {
	if cl.writer == nil {
		return nil
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	name := sessionLabel(result.Session)
	var b strings.Builder

	if !result.Decoded() {
		if !cl.shouldLog("error") {
			return nil
		}
		status := "DECODE FAILED"
		if cl.colorOutput {
			status = color.New(color.FgRed).Sprint(status)
		}
		fmt.Fprintf(&b, "[%s] %s: %s: %s\n", ts, name, status, result.DecodeError)
		_, err := io.WriteString(cl.writer, b.String())
		return err
	}

	ok := 0
	for _, o := range result.Outcomes {
		if o.Status == models.StatusOK {
			ok++
		}
	}

	if cl.shouldLog("info") {
		summary := fmt.Sprintf("%d/%d metrics ok", ok, len(result.Outcomes))
		if cl.colorOutput {
			c := color.New(color.FgGreen)
			if ok < len(result.Outcomes) {
				c = color.New(color.FgYellow)
			}
			summary = c.Sprint(summary)
		}
		fmt.Fprintf(&b, "[%s] %s: %d events, %.2fs: %s\n", ts, name, result.Events, result.Duration, summary)
	}

	for _, o := range result.Outcomes {
		switch {
		case o.Status != models.StatusOK && cl.shouldLog("warn"):
			fmt.Fprintf(&b, "[%s]   - %s: %s (%s)\n", ts, o.Metric, cl.statusText(o.Status), o.Error)
		case o.Status == models.StatusOK && cl.shouldLog("debug"):
			fmt.Fprintf(&b, "[%s]   - %s: %s\n", ts, o.Metric, formatValues(o, cl.colorOutput))
		}
	}

	_, err := io.WriteString(cl.writer, b.String())
	return err
}

func (cl *ConsoleLogger) statusText(status models.OutcomeStatus) string {
	text := strings.ToUpper(string(status))
	if !cl.colorOutput {
		return text
	}
	switch status {
	case models.StatusOK:
		return color.New(color.FgGreen).Sprint(text)
	case models.StatusNoPresses:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgRed).Sprint(text)
	}
}

// LogSummary logs the batch summary at INFO level.
func (cl *ConsoleLogger) LogSummary(result models.BatchResult) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	counts := result.StatusCounts()
	failed := result.FailedSessions()

	header := "=== Analysis Summary ==="
	decoded := fmt.Sprintf("Decoded: %d", result.Decoded())
	failedText := fmt.Sprintf("Decode failures: %d", len(failed))
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		decoded = color.New(color.FgGreen).Sprint(decoded)
		if len(failed) > 0 {
			failedText = color.New(color.FgRed).Sprint(failedText)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Run: %s\n", ts, result.RunID)
	fmt.Fprintf(&b, "[%s] Sessions: %d\n", ts, len(result.Sessions))
	fmt.Fprintf(&b, "[%s] %s\n", ts, decoded)
	fmt.Fprintf(&b, "[%s] %s\n", ts, failedText)
	fmt.Fprintf(&b, "[%s] Metrics: %d ok, %d failed, %d no presses, %d skipped\n", ts,
		counts[models.StatusOK], counts[models.StatusFailed], counts[models.StatusNoPresses], counts[models.StatusSkipped])
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))

	if len(failed) > 0 {
		fmt.Fprintf(&b, "[%s] Failed sessions:\n", ts)
		for _, s := range failed {
			fmt.Fprintf(&b, "[%s]   - %s: %s\n", ts, sessionLabel(s.Session), s.DecodeError)
		}
	}

	io.WriteString(cl.writer, b.String())
}

// LogProgress logs batch progress with a progress bar at INFO level.
// Format: "[HH:MM:SS] Progress: [=====     ] 2/4 (50%)"
func (cl *ConsoleLogger) LogProgress(done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	fmt.Fprintf(cl.writer, "[%s] Progress: %s\n", timestamp(), pb.Render())
}

// sessionLabel names a session by file and subject.
func sessionLabel(info models.SessionInfo) string {
	name := filepath.Base(info.Path)
	if info.Subject != "" {
		return fmt.Sprintf("%s (subject %s)", name, info.Subject)
	}
	return name
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogSessionStart is a no-op implementation.
func (n *NoOpLogger) LogSessionStart(path string) {
}

// LogSessionResult is a no-op implementation.
func (n *NoOpLogger) LogSessionResult(result models.SessionResult) error {
	return nil
}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(result models.BatchResult) {
}
