// Package config loads the uxf CLI's project-level settings from uxf.yml:
// a viper.New() instance with SetDefault calls, a fixed config name/type/
// path, AutomaticEnv, and an Unmarshal into a single struct.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the uxf CLI's project configuration (uxf.yml).
type Config struct {
	// Format holds the default writer options new projects pretty-print
	// with, overridable per-invocation by CLI flags.
	Format FormatConfig `mapstructure:"format"`
	// ImportPaths is read from uxf.yml's import_paths key. No command passes
	// it to the import resolver, which searches only the importing file's
	// directory, UXF_PATH and the working directory.
	ImportPaths []string `mapstructure:"import_paths"`
}

// FormatConfig mirrors writer.Format's fields for YAML/viper binding.
type FormatConfig struct {
	Indent         string `mapstructure:"indent"`
	WrapWidth      int    `mapstructure:"wrap_width"`
	RealDP         int    `mapstructure:"realdp"`
	MaxShortLen    int    `mapstructure:"max_short_len"`
	UseTrueFalse   bool   `mapstructure:"use_true_false"`
	ReplaceImports bool   `mapstructure:"replace_imports"`
}

// Load reads uxf.yml (or uxf.yaml) from the current directory, falling
// back to defaults when no config file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("format.indent", "  ")
	v.SetDefault("format.wrap_width", 96)
	v.SetDefault("format.realdp", -1)
	v.SetDefault("format.max_short_len", 32)
	v.SetDefault("format.use_true_false", false)
	v.SetDefault("format.replace_imports", false)
	v.SetDefault("import_paths", []string{})

	v.SetConfigName("uxf")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// InProject reports whether the current directory looks like a uxf
// project: a uxf.yml/uxf.yaml file, or at least one .uxf document.
func InProject() bool {
	if _, err := os.Stat("uxf.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("uxf.yaml"); err == nil {
		return true
	}
	matches, _ := filepath.Glob("*.uxf")
	return len(matches) > 0
}

// GetProjectRoot walks upward from the working directory looking for
// uxf.yml/uxf.yaml, the way a version-control or build tool locates its
// project root.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "uxf.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "uxf.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a uxf project (no uxf.yml found)")
		}
		dir = parent
	}
}
