// Package config loads the robot's optional on-disk configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the structure of the optional robot.yaml file. Every
// field is optional; zero values defer to flags and environment defaults.
type FileConfig struct {
	Site struct {
		URL string `yaml:"url"`
	} `yaml:"site"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Browser struct {
		Headed bool `yaml:"headed"`
	} `yaml:"browser"`
	Log struct {
		File  string `yaml:"file"`
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
}

// Load loads configuration from the YAML file at path. Returns nil if the
// file doesn't exist (not an error). Returns an error if the file exists but
// cannot be parsed.
func Load(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
