// Package config loads the service configuration from a YAML file, applying
// defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr        string `yaml:"listen_addr"`
	DatasetPath       string `yaml:"dataset_path"`
	CORSAllowedOrigin string `yaml:"cors_allowed_origin"`
	WatchDataset      bool   `yaml:"watch_dataset"`
	Debug             bool   `yaml:"debug"`

	Weights WeightsConfig `yaml:"weights"`
	Filter  FilterConfig  `yaml:"filter"`
}

// WeightsConfig selects the self-loop accumulation variant. Both behaviors
// have shipped for this dataset; include_self_loops true counts a self-loop
// once toward its node's total, false omits it entirely.
type WeightsConfig struct {
	IncludeSelfLoops bool `yaml:"include_self_loops"`
}

// FilterConfig bounds the threshold control surface. Requests outside
// [min_weight, max_weight] are clamped, matching the slider range the
// renderer exposes.
type FilterConfig struct {
	MinWeight     float64 `yaml:"min_weight"`
	MaxWeight     float64 `yaml:"max_weight"`
	DefaultWeight float64 `yaml:"default_weight"`
}

func Default() *Config {
	return &Config{
		ListenAddr:        ":8080",
		DatasetPath:       "data/exhibitions.json",
		CORSAllowedOrigin: "*",
		WatchDataset:      false,
		Weights: WeightsConfig{
			IncludeSelfLoops: true,
		},
		Filter: FilterConfig{
			MinWeight:     1,
			MaxWeight:     100,
			DefaultWeight: 1,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("invalid config: listen_addr is required")
	}
	if c.Filter.MinWeight < 0 {
		return fmt.Errorf("invalid config: min_weight must be >= 0")
	}
	if c.Filter.MaxWeight < c.Filter.MinWeight {
		return fmt.Errorf("invalid config: max_weight must be >= min_weight")
	}
	if c.Filter.DefaultWeight < c.Filter.MinWeight || c.Filter.DefaultWeight > c.Filter.MaxWeight {
		return fmt.Errorf("invalid config: default_weight must lie within [min_weight, max_weight]")
	}
	return nil
}

// Clamp bounds a requested threshold to the configured range.
func (c *Config) Clamp(minWeight float64) float64 {
	if minWeight < c.Filter.MinWeight {
		return c.Filter.MinWeight
	}
	if minWeight > c.Filter.MaxWeight {
		return c.Filter.MaxWeight
	}
	return minWeight
}
