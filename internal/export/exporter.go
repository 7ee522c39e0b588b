// Package export renders batch analysis results as JSON, Markdown, CSV or
// HTML reports and writes them to disk.
package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/operant/internal/filelock"
	"github.com/harrison/operant/internal/models"
)

// Report format names accepted by NewExporter
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
)

// Exporter defines the interface for exporting batch results
type Exporter interface {
	Export(w io.Writer, batch *models.BatchResult) error
}

// NewExporter returns the exporter for a format name. "md" is accepted as an
// alias for markdown.
func NewExporter(format string, metricNames []string) (Exporter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &JSONExporter{Pretty: true}, nil
	case FormatMarkdown, "md":
		return &MarkdownExporter{MetricNames: metricNames, IncludeTimestamp: true}, nil
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatHTML:
		return &HTMLExporter{Markdown: MarkdownExporter{MetricNames: metricNames, IncludeTimestamp: true}}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (want json, markdown, csv or html)", format)
	}
}

// ExportToFile renders batch with e and writes it to path atomically while
// holding the path's file lock.
func ExportToFile(ctx context.Context, e Exporter, batch *models.BatchResult, path string) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}
	if err := filelock.LockAndWrite(ctx, path, func(w io.Writer) error {
		return e.Export(w, batch)
	}); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	return nil
}
