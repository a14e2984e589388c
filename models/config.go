// Package models defines data structures for configuration and reporting.
package models

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked for in the working directory when no --config
// flag is given.
const DefaultConfigName = "logtally.yaml"

// Config holds runtime configuration for count runs.
// Values come from an optional yaml file; CLI flags override them.
type Config struct {
	Input     string `yaml:"input"`
	Field     string `yaml:"field"`
	Extractor string `yaml:"extractor"`
	Policy    string `yaml:"policy"`
	Workers   int    `yaml:"workers"`
	Top       int    `yaml:"top"`
	Format    string `yaml:"format"`
	DBPath    string `yaml:"db_path"`
	CacheTTL  string `yaml:"cache_ttl"`
}

// DefaultConfig returns the built-in defaults. Worker count follows the
// machine, capped at 8.
func DefaultConfig() *Config {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}

	return &Config{
		Extractor: "field",
		Policy:    "skip",
		Workers:   workers,
		Top:       25,
		Format:    "table",
	}
}

// LoadConfig reads a yaml config file on top of the defaults. An empty path
// means the default file name, which is allowed to be absent.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	optional := false
	if path == "" {
		path = DefaultConfigName
		optional = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
