package analyzer

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config carries the tunable parameters of an analysis run.
type Config struct {
	TruePositiveThreshold  float64 `yaml:"truePositiveThreshold" json:"truePositiveThreshold"`   // confidence at or above validates true positive
	FalsePositiveThreshold float64 `yaml:"falsePositiveThreshold" json:"falsePositiveThreshold"` // confidence at or below validates false positive
	CircularConfidence     float64 `yaml:"circularConfidence" json:"circularConfidence"`         // initial confidence on detected cycles
	ProjectName            string  `yaml:"projectName,omitempty" json:"projectName,omitempty"`
	KnitVersion            string  `yaml:"knitVersion,omitempty" json:"knitVersion,omitempty"`
	PluginVersion          string  `yaml:"pluginVersion,omitempty" json:"pluginVersion,omitempty"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		TruePositiveThreshold:  0.70,
		FalsePositiveThreshold: 0.30,
		CircularConfidence:     0.9,
		KnitVersion:            "unknown",
		PluginVersion:          Version,
	}
}

// Validate checks threshold consistency.
func (c *Config) Validate() error {
	if c.TruePositiveThreshold < 0 || c.TruePositiveThreshold > 1 {
		return fmt.Errorf("truePositiveThreshold %v outside [0, 1]", c.TruePositiveThreshold)
	}
	if c.FalsePositiveThreshold < 0 || c.FalsePositiveThreshold > 1 {
		return fmt.Errorf("falsePositiveThreshold %v outside [0, 1]", c.FalsePositiveThreshold)
	}
	if c.FalsePositiveThreshold > c.TruePositiveThreshold {
		return fmt.Errorf("falsePositiveThreshold %v exceeds truePositiveThreshold %v", c.FalsePositiveThreshold, c.TruePositiveThreshold)
	}
	if c.CircularConfidence < 0 || c.CircularConfidence > 1 {
		return fmt.Errorf("circularConfidence %v outside [0, 1]", c.CircularConfidence)
	}
	return nil
}

// LoadConfig reads a YAML configuration from the given URL, unset fields keep
// their defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return config, nil
}
