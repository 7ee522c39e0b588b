package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/operant/internal/analysis"
	"github.com/harrison/operant/internal/config"
	"github.com/harrison/operant/internal/display"
	"github.com/harrison/operant/internal/export"
	"github.com/harrison/operant/internal/fileutil"
	"github.com/harrison/operant/internal/logger"
	"github.com/harrison/operant/internal/models"
	"github.com/harrison/operant/internal/results"
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <session-file-or-directory>...",
		Short: "Decode session files and compute behavioral metrics",
		Long: `Decode each session file and run every metric over its event stream.

Directories are scanned recursively for files with a MED-PC header; files
named explicitly are always analyzed. A session that fails to decode is
reported and skipped, and a metric that fails on one session does not stop
the others.

Each run is recorded in the results ledger ($OPERANT_HOME/results/results.db)
unless --no-record is given or results.enabled is false in the config.

Configuration is loaded from .operant/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  operant analyze data/2020-01-15/
  operant analyze '!2020-01-15_Subject R1' --time-scale 100
  operant analyze data/ --lever-on LLeverOn --lever-press LPressOn
  operant analyze data/ --format csv --output reports/run.csv
  operant analyze data/ --max-concurrency 4 --log-level debug`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	addDecodeFlags(cmd)
	cmd.Flags().Int("max-concurrency", 0, "Maximum number of sessions analyzed at once (0 = unlimited)")
	cmd.Flags().String("log-dir", "", "Directory for log files (default: .operant/logs)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("cue-on", "", "Label that opens a cue (default: ToneOn1)")
	cmd.Flags().String("cue-off", "", "Label that closes a cue (default: ToneOff1)")
	cmd.Flags().String("lever-on", "", "Lever presentation label for press latency (default: RLeverOn)")
	cmd.Flags().String("lever-press", "", "Lever press label for press latency (default: RPressOn)")
	cmd.Flags().String("format", "", "Export format: json, markdown, csv, html")
	cmd.Flags().String("output", "", "Export file path (required with --format)")
	cmd.Flags().Bool("no-record", false, "Do not record this run in the results ledger")

	return cmd
}

// runAnalyze implements the analyze command logic
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	files, scanErrs, err := fileutil.CollectSessionFiles(args)
	if err != nil {
		return fmt.Errorf("failed to collect session files: %w", err)
	}
	if len(scanErrs) > 0 {
		display.WarnScanErrors(scanErrs).Display(cmd.ErrOrStderr())
	}
	if len(files) == 0 {
		return fmt.Errorf("no session files found in %s", strings.Join(args, ", "))
	}

	consoleLog := logger.NewConsoleLogger(out, cfg.LogLevel)
	fileLog, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer fileLog.Close()

	opts := analysis.Options{
		Logger: logger.NewMultiLogger(consoleLog, fileLog),
	}
	if display.IsTerminal(out) {
		opts.Progress = consoleLog.LogProgress
	}

	analyzer, err := newAnalyzer(cfg, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Analyzing %d session file(s)...\n\n", len(files))

	ctx := commandContext(cmd)
	batch, runErr := analyzer.Run(ctx, files)

	fmt.Fprintln(out)
	if err := display.PrintOutcomeTable(out, *batch, analysis.MetricNames); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}
	if failed := batch.FailedSessions(); len(failed) > 0 {
		fmt.Fprintln(out)
		display.WarnDecodeFailures(failed).Display(out)
	}

	if runErr != nil {
		return runErr
	}

	noRecord, _ := cmd.Flags().GetBool("no-record")
	if cfg.Results.Enabled && !noRecord {
		dbPath, err := recordRun(ctx, cfg, batch)
		if err != nil {
			fileLog.LogError(fmt.Sprintf("failed to record run: %v", err))
			return err
		}
		fmt.Fprintf(out, "\nRecorded run %s in %s\n", batch.RunID, dbPath)
	}

	if cfg.Export.Format != "" {
		if err := exportReport(ctx, cfg, batch, out); err != nil {
			fileLog.LogError(fmt.Sprintf("failed to export report: %v", err))
			return err
		}
		if cfg.Export.Output != "-" {
			fmt.Fprintf(out, "Report written to: %s\n", cfg.Export.Output)
		}
	}

	fmt.Fprintf(out, "Logs written to: %s\n", cfg.LogDir)
	return nil
}

// recordRun stores the batch in the results ledger and returns the ledger path
func recordRun(ctx context.Context, cfg *config.Config, batch *models.BatchResult) (string, error) {
	dbPath, err := config.GetResultsDBPath(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to get results database path: %w", err)
	}

	store, err := results.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("open results ledger: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(ctx, batch); err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return dbPath, nil
}

// exportReport writes the configured report format to the configured path.
// An output of "-" writes to out.
func exportReport(ctx context.Context, cfg *config.Config, batch *models.BatchResult, out io.Writer) error {
	exporter, err := export.NewExporter(cfg.Export.Format, analysis.MetricNames)
	if err != nil {
		return err
	}
	if cfg.Export.Output == "-" {
		return exporter.Export(out, batch)
	}
	return export.ExportToFile(ctx, exporter, batch, cfg.Export.Output)
}
