package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"headshot-viewer/internal/logger"
)

const (
	EnvLogLevel       = "HEADSHOT_LOG_LEVEL"
	EnvLogFormat      = "HEADSHOT_LOG_FORMAT"
	EnvDebug          = "DEBUG"
	EnvBackendURL     = "HEADSHOT_BACKEND_URL"
	EnvBackendUser    = "HEADSHOT_BACKEND_USER"
	EnvBackendLatency = "HEADSHOT_BACKEND_LATENCY"
	EnvSettingsPath   = "HEADSHOT_SETTINGS_PATH"
	EnvMetricsAddr    = "HEADSHOT_METRICS_ADDR"
)

type WindowConfig struct {
	AppID  string  `toml:"app_id"`
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

func (c *WindowConfig) Finalize() error {
	if c.AppID == "" {
		c.AppID = "io.headshotviewer.app"
	}
	if c.Title == "" {
		c.Title = "Headshot Viewer"
	}
	if c.Width == 0 {
		c.Width = 1400
	}
	if c.Height == 0 {
		c.Height = 900
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Width, c.Height)
	}
	return nil
}

func (c *WindowConfig) Merge(overlay *WindowConfig) {
	if overlay.AppID != "" {
		c.AppID = overlay.AppID
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Width != 0 {
		c.Width = overlay.Width
	}
	if overlay.Height != 0 {
		c.Height = overlay.Height
	}
}

type LoggingConfig struct {
	Level  string        `toml:"level"`
	Format logger.Format `toml:"format"`
}

func (c *LoggingConfig) Finalize() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = logger.FormatConsole
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Level = v
	} else if debug, _ := strconv.ParseBool(os.Getenv(EnvDebug)); debug {
		c.Level = "debug"
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Format = logger.Format(v)
	}

	if _, err := logger.ParseLevel(c.Level); err != nil {
		return err
	}
	return c.Format.Validate()
}

func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

type BackendConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	// Latency simulated by the mock backend on every call.
	Latency    string `toml:"latency"`
	latencyVal time.Duration
}

func (c *BackendConfig) LatencyDuration() time.Duration {
	return c.latencyVal
}

func (c *BackendConfig) Finalize() error {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000/api"
	}
	if c.Username == "" {
		c.Username = "viewer"
	}
	if c.Latency == "" {
		c.Latency = "0s"
	}

	if v := os.Getenv(EnvBackendURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvBackendUser); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvBackendLatency); v != "" {
		c.Latency = v
	}

	d, err := time.ParseDuration(c.Latency)
	if err != nil {
		return fmt.Errorf("invalid latency: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("latency must not be negative, got %s", c.Latency)
	}
	c.latencyVal = d
	return nil
}

func (c *BackendConfig) Merge(overlay *BackendConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Latency != "" {
		c.Latency = overlay.Latency
	}
}

type SettingsConfig struct {
	// Path of the settings database. An empty path keeps settings in memory.
	Path string `toml:"path"`
	// Memory disables persistence entirely.
	Memory bool `toml:"memory"`
}

func (c *SettingsConfig) Finalize() error {
	if v := os.Getenv(EnvSettingsPath); v != "" {
		c.Path = v
	}
	if c.Path == "" && !c.Memory {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = ".data"
		}
		c.Path = filepath.Join(dir, "headshot-viewer", "settings.db")
	}
	return nil
}

func (c *SettingsConfig) Merge(overlay *SettingsConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.Memory {
		c.Memory = true
	}
}

type MetricsConfig struct {
	// Addr enables the /metrics endpoint when set.
	Addr string `toml:"addr"`
}

func (c *MetricsConfig) Finalize() error {
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Addr = v
	}
	if c.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
	}
	return nil
}

func (c *MetricsConfig) Merge(overlay *MetricsConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
}
