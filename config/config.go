// Package config loads the YAML configuration and encrypted secrets a
// pipeline run needs, grounded on the original implementation's
// state_machine/config package: a config.yaml discovered by walking up the
// directory tree, plus a sibling secrets.yaml whose values are encrypted at
// rest.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Logging mirrors the original implementation's Logging model
// (state_machine/logger_model.py): the settings the emit package's Logger
// needs to construct its rotating sink.
type Logging struct {
	Level           string `yaml:"level"`
	IncludeTerminal bool   `yaml:"include_terminal"`
	Path            string `yaml:"path"`
	MaxSizeMB       int    `yaml:"max_size_mb"`
	MaxAgeDays      int    `yaml:"max_age_days"`
	MaxBackups      int    `yaml:"max_backups"`
}

// Pipeline holds the settings a single named pipeline reads at startup: how
// many workers to run its sub-machines with, and a free-form bag of adapter
// settings (staging/archive directories, GPG key name, database DSNs, and
// so on) that pipeline-specific code interprets for itself.
type Pipeline struct {
	WorkerPoolSize int               `yaml:"worker_pool_size"`
	Settings       map[string]string `yaml:"settings"`
}

// Config is the parsed contents of config.yaml.
type Config struct {
	Logging   Logging             `yaml:"logging"`
	Pipelines map[string]Pipeline `yaml:"pipelines"`

	path string
}

// FromFile reads and parses the config.yaml file at path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.path = path

	return &cfg, nil
}

// Find walks up from dir looking for a file named "config.yaml", the same
// recursive-search behavior as the original implementation's
// Config.config_file. It stops at the first match, or returns an error once
// it reaches the filesystem root without finding one.
func Find(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config: no config.yaml found above %s", dir)
		}
		dir = parent
	}
}

// Pipeline looks up a named pipeline's settings, returning ok=false if the
// config file declares no pipeline with that name.
func (c *Config) Pipeline(name string) (Pipeline, bool) {
	p, ok := c.Pipelines[name]
	return p, ok
}

// Path returns the file Config was loaded from.
func (c *Config) Path() string {
	return c.path
}
