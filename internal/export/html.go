package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/operant/internal/models"
)

// HTMLExporter renders the Markdown report to a standalone HTML page
type HTMLExporter struct {
	Markdown MarkdownExporter
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

// Export writes the HTML page
func (he *HTMLExporter) Export(w io.Writer, batch *models.BatchResult) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}

	var md bytes.Buffer
	if err := he.Markdown.Export(&md, batch); err != nil {
		return err
	}

	var body bytes.Buffer
	renderer := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := renderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	title := "Operant Analysis Report"
	if batch.RunID != "" {
		title += " " + batch.RunID
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString(title)); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFoot)
	return err
}
