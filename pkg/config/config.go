// Package config provides layered configuration for logsieve.
// Priority: defaults < config file < flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/logsieve/logsieve/pkg/churn"
)

// FileName is the config file looked up in the working directory and
// the user's home directory when no explicit path is given.
const FileName = ".logsieve.yaml"

// Config holds all logsieve configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Churn  churn.Config `yaml:"churn"`
}

// EngineConfig controls the processing engine defaults.
type EngineConfig struct {
	Mode       string `yaml:"mode"`        // auto | sequential | parallel
	Workers    int    `yaml:"workers"`     // 0 = one per CPU
	BatchLines int64  `yaml:"batch_lines"` // progress flush granularity
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{Mode: "auto"},
		Churn:  churn.DefaultConfig(),
	}
}

// Load reads configuration, overlaying the first config file found on
// the defaults. Lookup order: the explicit path (required to exist if
// given), then ./.logsieve.yaml, then ~/.logsieve.yaml. Missing
// discovery files are not an error.
func Load(explicit string) (Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		path = discover()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func discover() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
