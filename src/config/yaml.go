package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadYAML overlays the keys present in the file onto cfg.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
