package cmd

import (
	"context"
	"fmt"

	"github.com/harrison/operant/internal/analysis"
	"github.com/harrison/operant/internal/config"
	"github.com/harrison/operant/internal/eventcodes"
	"github.com/spf13/cobra"
)

// addDecodeFlags registers the flags every decoding command shares
func addDecodeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("time-scale", 0, "Recorder ticks per second (default from config: 100)")
	cmd.Flags().String("event-codes", "", "Path to an event code table YAML (default: built-in table)")
}

// loadConfig loads the config file named by --config (or .operant/config.yaml),
// merges the flags the user set, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var timeScalePtr *float64
	if changed(cmd, "time-scale") {
		v, _ := cmd.Flags().GetFloat64("time-scale")
		timeScalePtr = &v
	}
	var maxConcurrencyPtr *int
	if changed(cmd, "max-concurrency") {
		v, _ := cmd.Flags().GetInt("max-concurrency")
		maxConcurrencyPtr = &v
	}

	cfg.MergeWithFlags(timeScalePtr, maxConcurrencyPtr,
		stringFlag(cmd, "log-dir"), stringFlag(cmd, "log-level"), stringFlag(cmd, "event-codes"))
	cfg.MergeMarkers(stringFlag(cmd, "cue-on"), stringFlag(cmd, "cue-off"),
		stringFlag(cmd, "lever-on"), stringFlag(cmd, "lever-press"))
	cfg.MergeExport(stringFlag(cmd, "format"), stringFlag(cmd, "output"))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// changed reports whether the command defines the flag and the user set it
func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// stringFlag returns the flag value when the user set it, nil otherwise
func stringFlag(cmd *cobra.Command, name string) *string {
	if !changed(cmd, name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// newAnalyzer loads the event code table named by cfg and builds an Analyzer.
func newAnalyzer(cfg *config.Config, opts analysis.Options) (*analysis.Analyzer, error) {
	table, err := eventcodes.Load(cfg.EventCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to load event codes: %w", err)
	}

	opts.Table = table
	opts.TimeScale = cfg.TimeScale
	opts.MaxConcurrency = cfg.MaxConcurrency
	opts.Markers = analysis.Markers{
		CueOn:            cfg.Markers.CueOn,
		CueOff:           cfg.Markers.CueOff,
		LeverOn:          cfg.Markers.LeverOn,
		LeverPress:       cfg.Markers.LeverPress,
		SecondLeverPress: cfg.Markers.SecondLeverPress,
	}
	return analysis.New(opts)
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
