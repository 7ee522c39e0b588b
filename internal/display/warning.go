package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/operant/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when out is a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, paint(IsTerminal(out), color.FgYellow, b.String()))
}

// WarnDecodeFailures creates a warning listing sessions that could not be decoded
func WarnDecodeFailures(failed []models.SessionResult) Warning {
	files := make([]string, 0, len(failed))
	for _, s := range failed {
		files = append(files, fmt.Sprintf("%s: %s", filepath.Base(s.Session.Path), s.DecodeError))
	}

	title := fmt.Sprintf("%d session could not be decoded", len(failed))
	if len(failed) != 1 {
		title = fmt.Sprintf("%d sessions could not be decoded", len(failed))
	}

	return Warning{
		Title:      title,
		Message:    "Every metric of these sessions was skipped.",
		Files:      files,
		Suggestion: "Check --time-scale and the event code table (operant codes).",
	}
}

// WarnScanErrors creates a warning for paths that could not be read while
// searching for session files
func WarnScanErrors(errs []error) Warning {
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		files = append(files, err.Error())
	}
	return Warning{
		Title: "Some paths could not be scanned",
		Files: files,
	}
}
