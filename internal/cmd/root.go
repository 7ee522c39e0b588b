package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for operant
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operant",
		Short: "Behavioral analysis of MED-PC operant session files",
		Long: `Operant decodes the packed event array of MED-PC session files into
timestamped events and computes behavioral metrics: reward retrieval latency,
cue versus inter-trial responding, lever press latency and go/no-go trials.

Every analysis run can be recorded in a local results ledger and exported as
JSON, Markdown, CSV or HTML reports.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .operant/config.yaml)")

	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewDecodeCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewCodesCommand())
	cmd.AddCommand(NewResultsCommand())

	return cmd
}
