package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator prints one line per processed file: "[N/Total] name"
type ProgressIndicator struct {
	writer   io.Writer
	action   string
	total    int
	current  int
	failed   int
	useColor bool
}

// NewProgressIndicator creates a progress indicator; action names the work, e.g. "Validating"
func NewProgressIndicator(w io.Writer, action string, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:   w,
		action:   action,
		total:    total,
		useColor: IsTerminal(w),
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "%s %d session %s:\n", p.action, p.total, plural(p.total, "file", "files"))
}

// Step displays progress for one file, in cyan when it succeeded and red when it failed
func (p *ProgressIndicator) Step(filename string, ok bool) {
	p.current++
	attr := color.FgCyan
	if !ok {
		p.failed++
		attr = color.FgRed
	}
	line := fmt.Sprintf("  [%d/%d] %s", p.current, p.total, filepath.Base(filename))
	fmt.Fprintln(p.writer, paint(p.useColor, attr, line))
}

// Complete displays the final count, with a green check when nothing failed
func (p *ProgressIndicator) Complete() {
	if p.failed == 0 {
		fmt.Fprintf(p.writer, "%s %d/%d session %s OK\n",
			paint(p.useColor, color.FgGreen, "✓"), p.current, p.total, plural(p.total, "file", "files"))
		return
	}
	fmt.Fprintf(p.writer, "%s %d/%d session %s failed\n",
		paint(p.useColor, color.FgRed, "✗"), p.failed, p.total, plural(p.total, "file", "files"))
}

// Failed returns how many steps failed
func (p *ProgressIndicator) Failed() int {
	return p.failed
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
