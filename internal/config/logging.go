package config

import "showcase/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" env:"SHOWCASE_LOG_LEVEL"`   // debug, info, warn, error
	Format     string          `yaml:"format" env:"SHOWCASE_LOG_FORMAT"` // json, text
	DebugMode  bool            `yaml:"debug_mode" env:"SHOWCASE_DEBUG"`  // Master toggle - false = no logging
	Categories map[string]bool `yaml:"categories,omitempty"`             // Per-category toggles
}

// Options converts the config into logging options.
func (c *LoggingConfig) Options() logging.Options {
	return logging.Options{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
	}
}
