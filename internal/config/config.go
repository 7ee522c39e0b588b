package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MarkersConfig names the event labels used by the configurable metrics
type MarkersConfig struct {
	// CueOn is the label that opens a cue for cue/ITI responding
	CueOn string `yaml:"cue_on"`

	// CueOff is the label that closes a cue
	CueOff string `yaml:"cue_off"`

	// LeverOn is the lever presentation label for press latency
	LeverOn string `yaml:"lever_on"`

	// LeverPress is the press label for press latency and press counts
	LeverPress string `yaml:"lever_press"`

	// SecondLeverPress is an optional second lever's press label
	SecondLeverPress string `yaml:"second_lever_press"`
}

// ResultsConfig represents the results ledger configuration
type ResultsConfig struct {
	// Enabled records every analysis run in the ledger
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the ledger database (empty = $OPERANT_HOME/results/results.db)
	DBPath string `yaml:"db_path"`
}

// ExportConfig represents default report export options
type ExportConfig struct {
	// Format is one of json, markdown, csv, html (empty = no export)
	Format string `yaml:"format"`

	// Output is the report path
	Output string `yaml:"output"`
}

// Config represents operant configuration options
type Config struct {
	// TimeScale is the recorder clock resolution in ticks per second
	TimeScale float64 `yaml:"time_scale"`

	// EventCodes is the path to an event code table (empty = built-in table)
	EventCodes string `yaml:"event_codes"`

	// MaxConcurrency is the maximum number of sessions analyzed at once (0 = unlimited)
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	Markers MarkersConfig `yaml:"markers"`
	Results ResultsConfig `yaml:"results"`
	Export  ExportConfig  `yaml:"export"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		TimeScale:      100, // MED-PC 10 ms resolution
		EventCodes:     "",
		MaxConcurrency: 0,
		LogLevel:       "info",
		LogDir:         ".operant/logs",
		Markers: MarkersConfig{
			CueOn:            "ToneOn1",
			CueOff:           "ToneOff1",
			LeverOn:          "RLeverOn",
			LeverPress:       "RPressOn",
			SecondLeverPress: "LPressOn",
		},
		Results: ResultsConfig{
			Enabled: true,
			DBPath:  "",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Keys present in the file override defaults; absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A relative event code table path is relative to the config file
	if cfg.EventCodes != "" && !filepath.IsAbs(cfg.EventCodes) {
		cfg.EventCodes = filepath.Join(filepath.Dir(path), cfg.EventCodes)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .operant/config.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".operant", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(timeScale *float64, maxConcurrency *int, logDir *string, logLevel *string, eventCodes *string) {
	if timeScale != nil {
		c.TimeScale = *timeScale
	}
	if maxConcurrency != nil {
		c.MaxConcurrency = *maxConcurrency
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if eventCodes != nil {
		c.EventCodes = *eventCodes
	}
}

// MergeMarkers overrides marker labels with non-nil flag values
func (c *Config) MergeMarkers(cueOn, cueOff, leverOn, leverPress *string) {
	if cueOn != nil {
		c.Markers.CueOn = *cueOn
	}
	if cueOff != nil {
		c.Markers.CueOff = *cueOff
	}
	if leverOn != nil {
		c.Markers.LeverOn = *leverOn
	}
	if leverPress != nil {
		c.Markers.LeverPress = *leverPress
	}
}

// MergeExport overrides the export format and output with non-nil flag values
func (c *Config) MergeExport(format, output *string) {
	if format != nil {
		c.Export.Format = *format
	}
	if output != nil {
		c.Export.Output = *output
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.TimeScale <= 0 || math.IsNaN(c.TimeScale) || math.IsInf(c.TimeScale, 0) {
		return fmt.Errorf("time_scale must be > 0, got %v", c.TimeScale)
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	m := c.Markers
	if m.CueOn == "" || m.CueOff == "" {
		return fmt.Errorf("markers.cue_on and markers.cue_off are required")
	}
	if m.CueOn == m.CueOff {
		return fmt.Errorf("markers.cue_on and markers.cue_off must differ, both are %q", m.CueOn)
	}
	if m.LeverOn == "" || m.LeverPress == "" {
		return fmt.Errorf("markers.lever_on and markers.lever_press are required")
	}

	switch c.Export.Format {
	case "", "json", "markdown", "md", "csv", "html":
	default:
		return fmt.Errorf("invalid export.format %q, must be one of: json, markdown, csv, html", c.Export.Format)
	}
	if c.Export.Format != "" && c.Export.Output == "" {
		return fmt.Errorf("export.output is required when export.format is set")
	}

	return nil
}
