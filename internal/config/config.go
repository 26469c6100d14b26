// Package config loads buildseq configuration from file, environment and
// defaults via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `mapstructure:"log_format"`

	// DatabasePath is the playback event log location. Empty disables
	// persistence.
	DatabasePath string `mapstructure:"database_path"`

	// EffectsPath optionally points at a YAML file of custom effect
	// definitions merged over the builtins.
	EffectsPath string `mapstructure:"effects_path"`

	// GateAutoResume is how long the headless player waits at a click
	// gate before resuming on its own. Zero blocks until interrupted.
	GateAutoResume time.Duration `mapstructure:"gate_auto_resume"`
}

// Load reads configuration from the given file (optional), the standard
// locations, and BUILDSEQ_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("buildseq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/buildseq")
	v.SetEnvPrefix("BUILDSEQ")
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("database_path", "")
	v.SetDefault("effects_path", "")
	v.SetDefault("gate_auto_resume", 2*time.Second)

	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
