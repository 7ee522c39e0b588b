package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harrison/operant/internal/models"
)

// MarkdownExporter exports batch results as a Markdown report
type MarkdownExporter struct {
	MetricNames      []string // Column order; derived from the outcomes when empty
	IncludeTimestamp bool     // Include export timestamp in header
}

// Export writes the report: summary, per-metric status table, one section
// per session and the decode failures.
func (me *MarkdownExporter) Export(w io.Writer, batch *models.BatchResult) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}

	var sb strings.Builder
	names := me.MetricNames
	if len(names) == 0 {
		names = metricNamesOf(batch)
	}

	sb.WriteString("# Operant Analysis Report\n\n")
	if me.IncludeTimestamp {
		sb.WriteString(fmt.Sprintf("**Generated**: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))
	}

	counts := batch.StatusCounts()
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Run ID**: %s\n", batch.RunID))
	sb.WriteString(fmt.Sprintf("- **Sessions**: %d\n", len(batch.Sessions)))
	sb.WriteString(fmt.Sprintf("- **Decoded**: %d\n", batch.Decoded()))
	sb.WriteString(fmt.Sprintf("- **Time Scale**: %s\n", num(batch.TimeScale)))
	if batch.TableVersion != "" {
		sb.WriteString(fmt.Sprintf("- **Event Codes**: %s\n", batch.TableVersion))
	}
	sb.WriteString(fmt.Sprintf("- **Metrics**: %d ok, %d failed, %d no presses, %d skipped\n",
		counts[models.StatusOK], counts[models.StatusFailed], counts[models.StatusNoPresses], counts[models.StatusSkipped]))
	sb.WriteString("\n")

	if len(batch.Sessions) > 0 && len(names) > 0 {
		sb.WriteString("## Metric Status\n\n")
		sb.WriteString("| Metric | OK | Failed | No Presses | Skipped |\n")
		sb.WriteString("|--------|----|--------|------------|---------|\n")
		for _, name := range names {
			byStatus := make(map[models.OutcomeStatus]int)
			for _, s := range batch.Sessions {
				if o, ok := s.Outcome(name); ok {
					byStatus[o.Status]++
				}
			}
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n", name,
				byStatus[models.StatusOK], byStatus[models.StatusFailed],
				byStatus[models.StatusNoPresses], byStatus[models.StatusSkipped]))
		}
		sb.WriteString("\n")
	}

	for _, s := range batch.Sessions {
		if !s.Decoded() {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeCell(filepath.Base(s.Session.Path))))
		if s.Session.Subject != "" {
			sb.WriteString(fmt.Sprintf("- **Subject**: %s\n", s.Session.Subject))
		}
		if s.Session.StartDate != "" {
			sb.WriteString(fmt.Sprintf("- **Start Date**: %s\n", s.Session.StartDate))
		}
		sb.WriteString(fmt.Sprintf("- **Events**: %d\n", s.Events))
		sb.WriteString(fmt.Sprintf("- **Duration**: %.2fs\n\n", s.Duration))

		sb.WriteString("| Metric | Status | Values | Error |\n")
		sb.WriteString("|--------|--------|--------|-------|\n")
		for _, o := range s.Outcomes {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				o.Metric, o.Status, formatValues(o), escapeCell(truncateString(o.Error, 80))))
		}
		sb.WriteString("\n")
	}

	if failed := batch.FailedSessions(); len(failed) > 0 {
		sb.WriteString("## Decode Failures\n\n")
		sb.WriteString("| Session | Error |\n")
		sb.WriteString("|---------|-------|\n")
		for _, s := range failed {
			sb.WriteString(fmt.Sprintf("| `%s` | %s |\n",
				truncateString(s.Session.Path, 60), escapeCell(s.DecodeError)))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// metricNamesOf collects metric names in first-seen order
func metricNamesOf(batch *models.BatchResult) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range batch.Sessions {
		for _, o := range s.Outcomes {
			if !seen[o.Metric] {
				seen[o.Metric] = true
				names = append(names, o.Metric)
			}
		}
	}
	return names
}

func formatValues(o models.Outcome) string {
	if len(o.Values) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(o.Values))
	for _, name := range o.ValueNames() {
		parts = append(parts, fmt.Sprintf("%s=%s", name, num(o.Values[name])))
	}
	return strings.Join(parts, ", ")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
