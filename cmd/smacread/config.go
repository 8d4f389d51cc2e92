package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/mfeurer/smacread"
	"gopkg.in/yaml.v3"
)

const configDirName = "smacread"

var configFiles = []string{
	"config.yaml",
	"config.yml",
}

// Config holds the tool configuration, loaded from an optional YAML file in
// the user's config directory.
type Config struct {
	// ChunkSize is the read size used when streaming rundata files.
	ChunkSize int `yaml:"chunk_size" default:"2048"`

	// FailOnTruncated reports an error when a rundata file ends in the
	// middle of a record instead of dropping the partial tail.
	FailOnTruncated bool `yaml:"fail_on_truncated"`

	// RunResultCodes overrides the numeric codes run results are mapped to
	// in the runs_and_results table.
	RunResultCodes smacread.RunResultCodes `yaml:"run_result_codes"`
}

func configDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDirName), nil
}

// loadConfig returns the configuration from the first config file found, or
// the defaults when there is none.
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	for _, filename := range configFiles {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
		break
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk_size must be positive, got %d", cfg.ChunkSize)
	}
	return cfg, nil
}
