package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the operant home directory
const HomeEnv = "OPERANT_HOME"

// GetOperantHome returns the operant home directory.
// Priority order:
//  1. OPERANT_HOME environment variable (if set)
//  2. .operant in the current working directory
//
// The directory is created if it doesn't exist
func GetOperantHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create operant home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, ".operant")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create operant home directory: %w", err)
	}
	return home, nil
}

// GetResultsDBPath returns the path of the results ledger.
// An explicit configured path wins; otherwise $OPERANT_HOME/results/results.db
func GetResultsDBPath(cfg *Config) (string, error) {
	if cfg != nil && cfg.Results.DBPath != "" {
		return cfg.Results.DBPath, nil
	}

	home, err := GetOperantHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "results", "results.db"), nil
}
