package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jshape/internal/formatter"
	"github.com/mcncl/jshape/internal/shape"
)

// Config represents the complete configuration for jshape
type Config struct {
	// MaxExamples is the number of distinct example values shown per
	// scalar shape before the "..." marker kicks in.
	MaxExamples int `yaml:"max_examples"`
	// Indent is the number of spaces per indentation level in the output.
	Indent int `yaml:"indent"`
	// Repair enables the jsonrepair fallback for malformed input.
	Repair bool `yaml:"repair"`
	// Debug enables diagnostic output on stderr.
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MaxExamples: shape.DefaultMaxExamples,
		Indent:      formatter.DefaultIndentWidth,
	}
}

// LoadConfig loads configuration from a YAML file, starting from defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.MaxExamples < 1 {
		return nil, fmt.Errorf("max_examples must be at least 1, got %d", cfg.MaxExamples)
	}
	if cfg.Indent < 1 {
		return nil, fmt.Errorf("indent must be at least 1, got %d", cfg.Indent)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jshape.yml", ".jshape.yaml", "jshape.yml", "jshape.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// ApplyOverrides merges explicit CLI values into the config. Zero values
// mean "not set on the command line" and leave the config untouched;
// booleans only ever switch a feature on.
func (c *Config) ApplyOverrides(maxExamples, indent int, repair, debug bool) {
	if maxExamples > 0 {
		c.MaxExamples = maxExamples
	}
	if indent > 0 {
		c.Indent = indent
	}
	if repair {
		c.Repair = true
	}
	if debug {
		c.Debug = true
	}
}
