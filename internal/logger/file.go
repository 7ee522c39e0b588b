package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/operant/internal/models"
)

// FileLogger logs analysis runs to files in a log directory (.operant/logs by default).
// It creates timestamped per-run log files, per-session detail logs,
// and maintains a latest.log symlink pointing to the most recent run.
type FileLogger struct {
	logDir      string
	runLog      *os.File
	runFile     string
	sessionsDir string
	logLevel    string
	mu          sync.Mutex
}

// NewFileLogger creates a new FileLogger that writes to .operant/logs/
// with log level "info".
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(filepath.Join(".operant", "logs"), "info")
}

// NewFileLoggerWithDirAndLevel creates a new FileLogger with a custom log directory and log level.
// It creates the directory if needed, opens run-YYYYMMDD-HHMMSS.log and
// points latest.log at it.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	sessionsDir := filepath.Join(logDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:      logDir,
		runLog:      file,
		runFile:     runFile,
		sessionsDir: sessionsDir,
		logLevel:    normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== Operant Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogSessionStart logs the start of a session at DEBUG level.
func (fl *FileLogger) LogSessionStart(path string) {
	if !fl.shouldLog("debug") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] Analyzing %s\n", timestamp(), path))
}

// LogSessionResult writes one line to the run log and a detailed log for
// the session under sessions/.
func (fl *FileLogger) LogSessionResult(result models.SessionResult) error {
	if fl.shouldLog("info") {
		var line string
		if result.Decoded() {
			counts := make(map[models.OutcomeStatus]int)
			for _, o := range result.Outcomes {
				counts[o.Status]++
			}
			line = fmt.Sprintf("[%s] %s: %d events, %d ok, %d failed, %d no presses\n",
				timestamp(), sessionLabel(result.Session), result.Events,
				counts[models.StatusOK], counts[models.StatusFailed], counts[models.StatusNoPresses])
		} else {
			line = fmt.Sprintf("[%s] %s: DECODE FAILED: %s\n", timestamp(), sessionLabel(result.Session), result.DecodeError)
		}
		fl.writeRunLog(line)
	}

	return fl.writeSessionLog(result)
}

func (fl *FileLogger) writeSessionLog(result models.SessionResult) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	name := sessionLogName(result.Session.Path)
	file, err := os.OpenFile(filepath.Join(fl.sessionsDir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create session log file: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	info := result.Session
	fmt.Fprintf(&b, "=== Session %s ===\n", info.Path)
	fmt.Fprintf(&b, "Subject: %s\n", info.Subject)
	fmt.Fprintf(&b, "Experiment: %s\n", info.Experiment)
	fmt.Fprintf(&b, "Group: %s\n", info.Group)
	fmt.Fprintf(&b, "Box: %s\n", info.Box)
	fmt.Fprintf(&b, "Start Date: %s\n", info.StartDate)
	fmt.Fprintf(&b, "Elapsed: %s\n\n", formatDuration(result.Elapsed))

	if !result.Decoded() {
		fmt.Fprintf(&b, "Decode error:\n%s\n\n", result.DecodeError)
	} else {
		fmt.Fprintf(&b, "Events: %d\n", result.Events)
		fmt.Fprintf(&b, "Duration: %.2fs\n\n", result.Duration)
	}

	for _, o := range result.Outcomes {
		fmt.Fprintf(&b, "#### %s - %s\n", o.Metric, o.Status)
		if len(o.Values) > 0 {
			fmt.Fprintf(&b, "%s\n", formatValues(o, false))
		}
		if o.Error != "" {
			fmt.Fprintf(&b, "Error: %s\n", o.Error)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Completed at: %s\n", time.Now().Format(time.RFC3339))

	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}

// sessionLogName derives a flat log file name from a session path.
func sessionLogName(path string) string {
	base := filepath.Base(path)
	base = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '!', ':', '/', '\\':
			return '_'
		}
		return r
	}, base)
	return base + ".log"
}

// LogSummary logs the batch summary with final statistics at INFO level.
func (fl *FileLogger) LogSummary(result models.BatchResult) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	counts := result.StatusCounts()
	failed := result.FailedSessions()

	status := "SUCCESS"
	if len(failed) > 0 {
		if result.Decoded() == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	message := fmt.Sprintf(
		"\n[%s] === ANALYSIS SUMMARY ===\n"+
			"[%s] Run ID:       %s\n"+
			"[%s] Sessions:     %d\n"+
			"[%s] Decoded:      %d\n"+
			"[%s] Metrics ok:   %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] No presses:   %d\n"+
			"[%s] Skipped:      %d\n"+
			"[%s] Total time:   %.1fs\n"+
			"[%s] Status:       %s (%d/%d sessions decoded)\n"+
			"[%s] Completed at: %s\n",
		ts,
		ts, result.RunID,
		ts, len(result.Sessions),
		ts, result.Decoded(),
		ts, counts[models.StatusOK],
		ts, counts[models.StatusFailed],
		ts, counts[models.StatusNoPresses],
		ts, counts[models.StatusSkipped],
		ts, result.Duration.Seconds(),
		ts, status, result.Decoded(), len(result.Sessions),
		ts, time.Now().Format(time.RFC3339),
	)

	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
