package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete teamtask configuration
type Config struct {
	Endpoint      EndpointConfig     `mapstructure:"endpoint"`
	Sync          SyncConfig         `mapstructure:"sync"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	TUI           TUIConfig          `mapstructure:"tui"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// EndpointConfig identifies the remote spreadsheet endpoint
type EndpointConfig struct {
	// URL is the web-app endpoint the client POSTs to. Empty means the
	// client has not been set up yet.
	URL string `mapstructure:"url"`
	// TimeoutSeconds is the per-request HTTP timeout (default: 15)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// SyncConfig controls the background task synchronizer
type SyncConfig struct {
	// IntervalSeconds is how often the synchronizer polls the Tasks
	// collection (default: 10, min: 2)
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	// Enabled controls whether new-assignment notifications are shown (default: true)
	Enabled bool `mapstructure:"enabled"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// PageSize is the number of task cards per page in list views (default: 10)
	PageSize int `mapstructure:"page_size"`
	// ShowDescriptions expands task descriptions inline in list views (default: true)
	ShowDescriptions bool `mapstructure:"show_descriptions"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:            "",
			TimeoutSeconds: 15,
		},
		Sync: SyncConfig{
			IntervalSeconds: 10,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		TUI: TUIConfig{
			PageSize:         10,
			ShowDescriptions: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Timeout returns the HTTP timeout as a time.Duration
func (e *EndpointConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Interval returns the poll interval as a time.Duration
func (s *SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Endpoint defaults
	viper.SetDefault("endpoint.url", defaults.Endpoint.URL)
	viper.SetDefault("endpoint.timeout_seconds", defaults.Endpoint.TimeoutSeconds)

	// Sync defaults
	viper.SetDefault("sync.interval_seconds", defaults.Sync.IntervalSeconds)

	// Notification defaults
	viper.SetDefault("notifications.enabled", defaults.Notifications.Enabled)

	// TUI defaults
	viper.SetDefault("tui.page_size", defaults.TUI.PageSize)
	viper.SetDefault("tui.show_descriptions", defaults.TUI.ShowDescriptions)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// SetEndpoint persists the endpoint URL to the config file. It writes the
// full current configuration so a later Load sees a consistent file.
func SetEndpoint(url string) error {
	viper.Set("endpoint.url", url)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return viper.WriteConfigAs(ConfigFile())
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teamtask")
	}
	// Fall back to ~/.config/teamtask
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamtask"
	}
	return filepath.Join(home, ".config", "teamtask")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory for mutable state: the session slot and
// log files.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "teamtask")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamtask"
	}
	return filepath.Join(home, ".local", "share", "teamtask")
}
