// Package config loads the hexload.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the hexload.json configuration file
type Config struct {
	Script string      `json:"script"`
	File   string      `json:"file"`
	Lib    string      `json:"lib"`
	Output string      `json:"output"`
	Watch  WatchConfig `json:"watch"`
}

// WatchConfig contains watch-mode configuration
type WatchConfig struct {
	Patterns []string `json:"patterns"`
	Exclude  []string `json:"exclude"`
}

// DefaultWatchConfig returns the watch settings used when no hexload.json
// provides them.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Patterns: []string{"*.lua", "**/*.lua"},
		Exclude:  []string{"out/", ".git/"},
	}
}

// LoadConfig loads hexload.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads hexload.json from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Script == "" {
		config.Script = "./loader.lua"
	}
	if config.Lib == "" {
		config.Lib = "./lib"
	}
	if config.Output == "" {
		config.Output = "./out/patterns.hexpat"
	}
	defaults := DefaultWatchConfig()
	if len(config.Watch.Patterns) == 0 {
		config.Watch.Patterns = defaults.Patterns
	}
	if len(config.Watch.Exclude) == 0 {
		config.Watch.Exclude = defaults.Exclude
	}

	return &config, nil
}

// loadConfigFromDir searches for hexload.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "hexload.json")
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no hexload.json found in %s or any parent directory", startDir)
}
