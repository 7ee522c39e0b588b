package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/harrison/operant/internal/config"
	"github.com/harrison/operant/internal/models"
	"github.com/harrison/operant/internal/results"
	"github.com/spf13/cobra"
)

// NewResultsCommand creates the 'operant results' command
func NewResultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show recorded analysis runs",
		Long: `Display the runs recorded in the results ledger including:
  - Recent runs with session and outcome counts
  - Per-metric success and failure counts
  - Recorded values of one subject or metric (--subject, --metric)`,
		Args: cobra.NoArgs,
		RunE: runResults,
	}

	cmd.Flags().Int("limit", 10, "Number of recent runs to show (0 = all)")
	cmd.Flags().String("run", "", "Restrict metric counts to one run id")
	cmd.Flags().String("subject", "", "Show recorded outcomes of this subject")
	cmd.Flags().String("metric", "", "Show recorded outcomes of this metric")

	return cmd
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	output := cmd.OutOrStdout()

	dbPath, err := config.GetResultsDBPath(cfg)
	if err != nil {
		return fmt.Errorf("failed to get results database path: %w", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No recorded runs found\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := results.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open results ledger: %w", err)
	}
	defer store.Close()

	ctx := commandContext(cmd)
	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	subject, _ := cmd.Flags().GetString("subject")
	metric, _ := cmd.Flags().GetString("metric")

	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("get runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(output, "No recorded runs found\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	stats, err := store.MetricStats(ctx, runID)
	if err != nil {
		return fmt.Errorf("get metric stats: %w", err)
	}

	printRuns(output, runs)
	printMetricStats(output, stats, runID)

	if subject != "" || metric != "" {
		entries, err := store.History(ctx, results.HistoryQuery{Subject: subject, Metric: metric, Limit: 100})
		if err != nil {
			return fmt.Errorf("get history: %w", err)
		}
		printHistory(output, entries, subject, metric)
	}

	return nil
}

func printRuns(w io.Writer, runs []results.RunSummary) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "\n=== Recent Runs ===\n\n")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSESSIONS\tDECODED\tOK\tFAILED\tNO PRESSES\tSKIPPED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Sessions, r.Decoded,
			r.Counts[models.StatusOK], r.Counts[models.StatusFailed],
			r.Counts[models.StatusNoPresses], r.Counts[models.StatusSkipped])
	}
	tw.Flush()
}

func printMetricStats(w io.Writer, stats []results.MetricStat, runID string) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	scope := "all runs"
	if runID != "" {
		scope = "run " + runID
	}
	fmt.Fprintf(w, "\n")
	cyan.Fprintf(w, "Metric Outcomes (%s):\n", scope)

	if len(stats) == 0 {
		fmt.Fprintf(w, "  No outcomes recorded\n")
		return
	}

	for _, s := range stats {
		rate := 0.0
		if s.Total() > 0 {
			rate = float64(s.OK) / float64(s.Total()) * 100
		}
		fmt.Fprintf(w, "  %s: %d ok, %d failed, %d no presses, %d skipped (", s.Metric, s.OK, s.Failed, s.NoPresses, s.Skipped)
		if rate >= 70 {
			green.Fprintf(w, "%.1f%%", rate)
		} else if rate >= 40 {
			yellow.Fprintf(w, "%.1f%%", rate)
		} else {
			red.Fprintf(w, "%.1f%%", rate)
		}
		fmt.Fprintf(w, " ok)\n")
	}
}

func printHistory(w io.Writer, entries []results.HistoryEntry, subject, metric string) {
	cyan := color.New(color.FgCyan, color.Bold)

	var filters []string
	if subject != "" {
		filters = append(filters, "subject "+subject)
	}
	if metric != "" {
		filters = append(filters, "metric "+metric)
	}
	fmt.Fprintf(w, "\n")
	cyan.Fprintf(w, "History (%s):\n", strings.Join(filters, ", "))

	if len(entries) == 0 {
		fmt.Fprintf(w, "  No outcomes recorded\n")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSESSION\tSUBJECT\tMETRIC\tSTATUS\tVALUES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04"), filepath.Base(e.Path), e.Subject,
			e.Metric, e.Status, formatHistoryValues(e.Values))
	}
	tw.Flush()
}

func formatHistoryValues(values map[string]float64) string {
	if len(values) == 0 {
		return "-"
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+strconv.FormatFloat(values[name], 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}
