package cmd

import (
	"fmt"
	"strings"

	"github.com/harrison/operant/internal/analysis"
	"github.com/harrison/operant/internal/display"
	"github.com/harrison/operant/internal/fileutil"
	"github.com/harrison/operant/internal/models"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <session-file-or-directory>...",
		Short: "Check that session files decode",
		Long: `Parse and decode session files without computing metrics, checking for:
  - A readable header and a W event array
  - Numeric tokens with at least 5 digits
  - Event ids present in the event code table
  - Non-decreasing tick counts

Exit code: 0 if every session decodes, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}

	addDecodeFlags(cmd)

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
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
		display.WarnScanErrors(scanErrs).Display(out)
	}
	if len(files) == 0 {
		return fmt.Errorf("no session files found in %s", strings.Join(args, ", "))
	}

	analyzer, err := newAnalyzer(cfg, analysis.Options{})
	if err != nil {
		return err
	}

	progress := display.NewProgressIndicator(out, "Validating", len(files))
	progress.Start()

	var failed []models.SessionResult
	for _, path := range files {
		header, _, err := analyzer.DecodeFile(path)
		progress.Step(path, err == nil)
		if err != nil {
			failed = append(failed, models.SessionResult{
				Session:     analysis.SessionInfo(path, header),
				Err:         err,
				DecodeError: err.Error(),
			})
		}
	}
	progress.Complete()

	if len(failed) > 0 {
		fmt.Fprintln(out)
		display.WarnDecodeFailures(failed).Display(out)
		return fmt.Errorf("%d of %d session file(s) failed to decode", len(failed), len(files))
	}
	return nil
}
