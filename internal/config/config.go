// Package config loads the viewer configuration from TOML files with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is read when no explicit path is given.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern names environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	EnvViewerEnv       = "HEADSHOT_ENV"
	EnvShutdownTimeout = "HEADSHOT_SHUTDOWN_TIMEOUT"
)

type Config struct {
	Window          WindowConfig   `toml:"window"`
	Logging         LoggingConfig  `toml:"logging"`
	Backend         BackendConfig  `toml:"backend"`
	Settings        SettingsConfig `toml:"settings"`
	Metrics         MetricsConfig  `toml:"metrics"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads path and applies any overlay selected by HEADSHOT_ENV. An empty
// path reads config.toml from the working directory and tolerates its
// absence.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = BaseConfigFile
	}

	cfg, err := load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = &Config{}
	default:
		return nil, err
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Window.Finalize(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Backend.Finalize(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if err := c.Settings.Finalize(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := c.Metrics.Finalize(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.Window.Merge(&overlay.Window)
	c.Logging.Merge(&overlay.Logging)
	c.Backend.Merge(&overlay.Backend)
	c.Settings.Merge(&overlay.Settings)
	c.Metrics.Merge(&overlay.Metrics)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvViewerEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
