// Package config holds the on-disk layout and runtime settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config describes where the note database, search index, and audio files
// live, plus runtime knobs.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	DatabaseFile string `yaml:"database_file"`
	IndexFile    string `yaml:"index_file"`
	AudioDir     string `yaml:"audio_dir"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the default configuration rooted under ~/.waynote.
func Default() *Config {
	dataDir := ".waynote"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".waynote")
	}
	return &Config{
		DataDir:      dataDir,
		DatabaseFile: "notes.db",
		IndexFile:    "search.db",
		AudioDir:     "AudioFiles",
		LogLevel:     "info",
	}
}

// Load reads a YAML config file over the defaults. A missing file just
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DatabasePath returns the absolute path of the note database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// IndexPath returns the absolute path of the search index database.
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir, c.IndexFile)
}

// AudioPath returns the absolute path of the audio file directory.
func (c *Config) AudioPath() string {
	return filepath.Join(c.DataDir, c.AudioDir)
}
