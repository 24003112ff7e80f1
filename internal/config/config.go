package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all showcase configuration.
type Config struct {
	// Dataset source
	Dataset DatasetConfig `yaml:"dataset"`

	// List controller tuning
	Gallery GalleryConfig `yaml:"gallery"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Outbound link behaviour
	Links LinksConfig `yaml:"links"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig configures where projects come from.
type DatasetConfig struct {
	// Path to a JSON or YAML dataset. Empty uses the embedded sample.
	Path string `yaml:"path" env:"SHOWCASE_DATASET"`

	// Watch reloads (and reshuffles) the dataset when the file changes.
	Watch bool `yaml:"watch" env:"SHOWCASE_WATCH"`

	// ReloadDebounce coalesces bursts of file events.
	ReloadDebounce string `yaml:"reload_debounce" env:"SHOWCASE_RELOAD_DEBOUNCE"`
}

// GalleryConfig tunes the list controller.
type GalleryConfig struct {
	PageSize        int    `yaml:"page_size" env:"SHOWCASE_PAGE_SIZE"`
	Debounce        string `yaml:"debounce" env:"SHOWCASE_DEBOUNCE"`
	LoadDelay       string `yaml:"load_delay" env:"SHOWCASE_LOAD_DELAY"`
	ScrollThreshold int    `yaml:"scroll_threshold" env:"SHOWCASE_SCROLL_THRESHOLD"`

	// Seed makes the shuffle reproducible. Zero means a fresh order per run.
	Seed uint64 `yaml:"seed,omitempty" env:"SHOWCASE_SEED"`
}

// LinksConfig controls how project links are rendered.
type LinksConfig struct {
	// LegacyLiveDemo points the live-demo link at the GitHub URL, as the
	// first web gallery did.
	LegacyLiveDemo bool `yaml:"legacy_live_demo" env:"SHOWCASE_LEGACY_LIVE_DEMO"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			ReloadDebounce: "250ms",
		},

		Gallery: GalleryConfig{
			PageSize:        9,
			Debounce:        "300ms",
			LoadDelay:       "1s",
			ScrollThreshold: 4,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigDir returns the directory where config and logs are stored.
func ConfigDir() (string, error) {
	// Prefer a project-local .showcase directory if present or creatable
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".showcase")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".showcase"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies SHOWCASE_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the list controller cannot work with.
func (c *Config) Validate() error {
	if c.Gallery.PageSize <= 0 {
		return fmt.Errorf("gallery.page_size must be positive, got %d", c.Gallery.PageSize)
	}
	if c.Gallery.ScrollThreshold < 0 {
		return fmt.Errorf("gallery.scroll_threshold must not be negative, got %d", c.Gallery.ScrollThreshold)
	}
	for name, raw := range map[string]string{
		"gallery.debounce":        c.Gallery.Debounce,
		"gallery.load_delay":      c.Gallery.LoadDelay,
		"dataset.reload_debounce": c.Dataset.ReloadDebounce,
	} {
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err != nil || d < 0 {
			return fmt.Errorf("%s: invalid duration %q", name, raw)
		}
	}
	return nil
}

// GetDebounce returns the search debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	return parseDuration(c.Gallery.Debounce, 300*time.Millisecond)
}

// GetLoadDelay returns the simulated page-load delay as a duration.
func (c *Config) GetLoadDelay() time.Duration {
	return parseDuration(c.Gallery.LoadDelay, time.Second)
}

// GetReloadDebounce returns the dataset watcher's quiet period.
func (c *Config) GetReloadDebounce() time.Duration {
	return parseDuration(c.Dataset.ReloadDebounce, 250*time.Millisecond)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
