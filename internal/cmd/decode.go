package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/operant/internal/analysis"
	"github.com/harrison/operant/internal/models"
	"github.com/spf13/cobra"
)

// NewDecodeCommand creates the decode command
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <session-file>",
		Short: "Print the decoded event stream of a session file",
		Long: `Decode the W event array of a session file and print one event per line:
position, timestamp in seconds since the first event, and label.

Output formats:
  tsv   tab-separated with a commented header (default)
  json  a single document with the session header and events`,
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}

	addDecodeFlags(cmd)
	cmd.Flags().String("output-format", "tsv", "Output format: tsv or json")

	return cmd
}

// decodedSession is the JSON document printed by decode --output-format json
type decodedSession struct {
	Session      models.SessionInfo    `json:"session"`
	TimeScale    float64               `json:"time_scale"`
	TableVersion string                `json:"event_codes_version"`
	Duration     float64               `json:"duration_seconds"`
	Events       []models.DecodedEvent `json:"events"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output-format")
	format = strings.ToLower(format)
	if format != "tsv" && format != "json" {
		return fmt.Errorf("invalid output format %q (want tsv or json)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(cfg, analysis.Options{})
	if err != nil {
		return err
	}

	path := args[0]
	header, stream, err := analyzer.DecodeFile(path)
	if err != nil {
		return err
	}

	doc := decodedSession{
		Session:      analysis.SessionInfo(path, header),
		TimeScale:    cfg.TimeScale,
		TableVersion: analyzer.Table().Version(),
		Duration:     stream.Duration(),
		Events:       stream.Events(),
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
		return nil
	}
	return writeEventsTSV(out, doc)
}

func writeEventsTSV(out io.Writer, doc decodedSession) error {
	if doc.Session.Subject != "" {
		fmt.Fprintf(out, "# subject: %s\n", doc.Session.Subject)
	}
	if doc.Session.StartDate != "" {
		fmt.Fprintf(out, "# start date: %s\n", doc.Session.StartDate)
	}
	fmt.Fprintf(out, "# events: %d, duration: %.2fs, time scale: %g\n", len(doc.Events), doc.Duration, doc.TimeScale)
	fmt.Fprintln(out, "position\ttimestamp\tlabel")
	for i, ev := range doc.Events {
		if _, err := fmt.Fprintf(out, "%d\t%.2f\t%s\n", i, ev.Timestamp, ev.Label); err != nil {
			return err
		}
	}
	return nil
}
