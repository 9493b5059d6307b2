// Package config loads per-repository settings from .sem/config.yaml with
// SEM_-prefixed environment overrides.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tunables of a sem invocation.
type Config struct {
	// Workers caps per-file diff parallelism; 0 means one per CPU.
	Workers int `mapstructure:"workers"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`

	// BlameDepth and HistoryDepth bound commit walks.
	BlameDepth   int `mapstructure:"blame_depth"`
	HistoryDepth int `mapstructure:"history_depth"`

	// Ignore lists extra path prefixes the bridge filters out, in addition
	// to .sem/.
	Ignore []string `mapstructure:"ignore"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers:      0,
		LogLevel:     "warn",
		BlameDepth:   50,
		HistoryDepth: 100,
	}
}

// Load reads .sem/config.yaml under repoRoot, falling back to defaults for
// anything unset. A missing file is not an error.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(repoRoot, ".sem"))
	v.SetEnvPrefix("SEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("blame_depth", defaults.BlameDepth)
	v.SetDefault("history_depth", defaults.HistoryDepth)
	v.SetDefault("ignore", []string{})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
