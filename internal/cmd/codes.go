package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/harrison/operant/internal/eventcodes"
	"github.com/spf13/cobra"
)

// NewCodesCommand creates the codes command
func NewCodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the active event code table",
		Long: `Print every event id and its label from the event code table that
decoding uses: the built-in table, or the file named by --event-codes or
event_codes in the config.`,
		Args: cobra.NoArgs,
		RunE: runCodes,
	}

	cmd.Flags().String("event-codes", "", "Path to an event code table YAML (default: built-in table)")

	return cmd
}

func runCodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	table, err := eventcodes.Load(cfg.EventCodes)
	if err != nil {
		return fmt.Errorf("failed to load event codes: %w", err)
	}

	out := cmd.OutOrStdout()
	source := "built-in"
	if cfg.EventCodes != "" {
		source = cfg.EventCodes
	}
	fmt.Fprintf(out, "Event codes: %s (version %s, %d codes)\n\n", source, table.Version(), table.Len())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL")
	for _, id := range table.IDs() {
		label, _ := table.Lookup(id)
		fmt.Fprintf(w, "%d\t%s\n", id, label)
	}
	return w.Flush()
}
