// Package config handles zi.toml interpreter configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents a zi.toml file. Command-line flags are combined with the
// values set here: a flag can switch a feature on, raise the verbosity, or
// replace the checkpoint path, but it cannot switch off what the file enables.
type Config struct {
	ShowScoreUpdates bool   `toml:"show-score-updates"`
	Verbosity        int    `toml:"verbosity"`
	SaveDir          string `toml:"save-dir"`
	Transcript       bool   `toml:"transcript"`
	TranscriptDB     string `toml:"transcript-db"`
	Checkpoint       string `toml:"checkpoint"`

	// Dir is the directory containing the zi.toml file (set at load time).
	Dir string `toml:"-"`
}

// Load parses a zi.toml file from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, "zi.toml"))
}

// LoadFile parses the configuration file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &c, nil
}

// FindAndLoad looks for a zi.toml next to the story file and then in the
// working directory. Returns nil if neither exists.
func FindAndLoad(storyPath string) (*Config, error) {
	dirs := []string{filepath.Dir(storyPath), "."}
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, "zi.toml")); err == nil {
			return Load(dir)
		}
	}
	return nil, nil
}
