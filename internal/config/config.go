// Package config loads the optional YAML configuration of the fatnav CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Config holds the settings which can also be given as flags.
// Zero values mean "not set".
type Config struct {
	Image      string   `yaml:"image"`
	LogLevel   string   `yaml:"log-level"`
	MaxNameLen int      `yaml:"max-name-len"`
	Fields     []string `yaml:"fields"`
}

// DefaultPath returns $HOME/.config/fatnav/config.yml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "fatnav", "config.yml")
}

// Load reads the config at path. A missing file is not an error and
// results in an empty Config.
func Load(fs afero.Fs, path string) (Config, error) {
	var c Config

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if c.MaxNameLen < 0 {
		return c, fmt.Errorf("%q: max-name-len must not be negative", path)
	}
	return c, nil
}

// Merge returns c with every field that is set in override replaced.
func (c Config) Merge(override Config) Config {
	if override.Image != "" {
		c.Image = override.Image
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	if override.MaxNameLen != 0 {
		c.MaxNameLen = override.MaxNameLen
	}
	if len(override.Fields) != 0 {
		c.Fields = override.Fields
	}
	return c
}
