package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TimeScale != 100 {
		t.Errorf("expected TimeScale=100, got %v", cfg.TimeScale)
	}
	if cfg.MaxConcurrency != 0 {
		t.Errorf("expected MaxConcurrency=0, got %d", cfg.MaxConcurrency)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %s", cfg.LogLevel)
	}
	if cfg.LogDir != ".operant/logs" {
		t.Errorf("expected LogDir=.operant/logs, got %s", cfg.LogDir)
	}
	if cfg.Markers.CueOn != "ToneOn1" || cfg.Markers.CueOff != "ToneOff1" {
		t.Errorf("unexpected cue markers: %+v", cfg.Markers)
	}
	if !cfg.Results.Enabled {
		t.Error("expected results ledger enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.TimeScale != 100 {
		t.Errorf("expected default TimeScale, got %v", cfg.TimeScale)
	}
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `time_scale: 1000
max_concurrency: 4
markers:
  cue_on: LightOn1
  cue_off: LightOff1
results:
  enabled: false
event_codes: codes.yaml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.TimeScale != 1000 {
		t.Errorf("expected TimeScale=1000, got %v", cfg.TimeScale)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("expected MaxConcurrency=4, got %d", cfg.MaxConcurrency)
	}
	if cfg.Markers.CueOn != "LightOn1" || cfg.Markers.CueOff != "LightOff1" {
		t.Errorf("cue markers not overridden: %+v", cfg.Markers)
	}
	// Untouched marker keeps its default
	if cfg.Markers.LeverOn != "RLeverOn" {
		t.Errorf("expected LeverOn default preserved, got %s", cfg.Markers.LeverOn)
	}
	if cfg.Results.Enabled {
		t.Error("expected explicit results.enabled=false to be honored")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel default preserved, got %s", cfg.LogLevel)
	}
	if cfg.EventCodes != filepath.Join(dir, "codes.yaml") {
		t.Errorf("expected event_codes resolved against config dir, got %s", cfg.EventCodes)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("time_scale: [1, 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".operant"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ".operant", "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	scale := 50.0
	level := "trace"
	cfg.MergeWithFlags(&scale, nil, nil, &level, nil)

	if cfg.TimeScale != 50 {
		t.Errorf("expected TimeScale=50, got %v", cfg.TimeScale)
	}
	if cfg.LogLevel != "trace" {
		t.Errorf("expected LogLevel=trace, got %s", cfg.LogLevel)
	}
	if cfg.LogDir != ".operant/logs" {
		t.Errorf("nil flag should keep LogDir, got %s", cfg.LogDir)
	}

	leverOn := "LLeverOn"
	cfg.MergeMarkers(nil, nil, &leverOn, nil)
	if cfg.Markers.LeverOn != "LLeverOn" {
		t.Errorf("expected LeverOn=LLeverOn, got %s", cfg.Markers.LeverOn)
	}
	if cfg.Markers.LeverPress != "RPressOn" {
		t.Errorf("nil flag should keep LeverPress, got %s", cfg.Markers.LeverPress)
	}

	format := "csv"
	cfg.MergeExport(&format, nil)
	if cfg.Export.Format != "csv" || cfg.Export.Output != "" {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero time scale", mutate: func(c *Config) { c.TimeScale = 0 }, wantErr: true},
		{name: "negative time scale", mutate: func(c *Config) { c.TimeScale = -1 }, wantErr: true},
		{name: "negative concurrency", mutate: func(c *Config) { c.MaxConcurrency = -2 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "missing cue marker", mutate: func(c *Config) { c.Markers.CueOn = "" }, wantErr: true},
		{name: "same cue markers", mutate: func(c *Config) { c.Markers.CueOff = c.Markers.CueOn }, wantErr: true},
		{name: "missing lever press", mutate: func(c *Config) { c.Markers.LeverPress = "" }, wantErr: true},
		{name: "bad export format", mutate: func(c *Config) { c.Export.Format = "xml"; c.Export.Output = "r.xml" }, wantErr: true},
		{name: "export without output", mutate: func(c *Config) { c.Export.Format = "csv" }, wantErr: true},
		{name: "html export", mutate: func(c *Config) { c.Export.Format = "html"; c.Export.Output = "r.html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestGetOperantHome_Env(t *testing.T) {
	home := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv(HomeEnv, home)

	got, err := GetOperantHome()
	if err != nil {
		t.Fatalf("GetOperantHome failed: %v", err)
	}
	if got != home {
		t.Errorf("expected %s, got %s", home, got)
	}
	if info, err := os.Stat(home); err != nil || !info.IsDir() {
		t.Errorf("expected home directory to be created")
	}
}

func TestGetResultsDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	got, err := GetResultsDBPath(DefaultConfig())
	if err != nil {
		t.Fatalf("GetResultsDBPath failed: %v", err)
	}
	if want := filepath.Join(home, "results", "results.db"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	cfg := DefaultConfig()
	cfg.Results.DBPath = "/tmp/explicit.db"
	got, err = GetResultsDBPath(cfg)
	if err != nil {
		t.Fatalf("GetResultsDBPath failed: %v", err)
	}
	if got != "/tmp/explicit.db" {
		t.Errorf("expected explicit path, got %s", got)
	}
}
