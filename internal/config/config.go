// internal/config/config.go

package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Actions       ActionsConfig       `yaml:"actions"`
	Logging       LoggingConfig       `yaml:"logging"`
	Runtime       RuntimeConfig       `yaml:"runtime"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`      // base url of the mini-docker api
	PushURL        string `yaml:"push_url"` // websocket endpoint, derived from url when empty
	RequestTimeout int    `yaml:"request_timeout_seconds"`
	LogTail        int    `yaml:"log_tail"`         // lines requested when fetching logs
	LogCacheTTL    int    `yaml:"log_cache_ttl_ms"` // how long fetched logs are reused
}

type PerformanceConfig struct {
	PollRate      int `yaml:"poll_rate"`         // seconds
	NudgeInterval int `yaml:"nudge_interval_ms"` // min gap between out-of-schedule polls
}

type NotificationsConfig struct {
	DisplaySeconds int `yaml:"display_seconds"`
	MaxVisible     int `yaml:"max_visible"`
}

type ActionsConfig struct {
	MaxConcurrent int      `yaml:"max_concurrent"` // remote calls in flight at once
	Confirm       []string `yaml:"confirm"`        // extra actions that need confirmation (delete always does)
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type RuntimeConfig struct {
	RunPreChecks bool `yaml:"run_prechecks"`
}

// Default config
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5000",
			PushURL:        "",
			RequestTimeout: 10,
			LogTail:        500,
			LogCacheTTL:    2000,
		},
		Performance: PerformanceConfig{
			PollRate:      2,
			NudgeInterval: 250,
		},
		Notifications: NotificationsConfig{
			DisplaySeconds: 5,
			MaxVisible:     4,
		},
		Actions: ActionsConfig{
			MaxConcurrent: 4,
			Confirm:       []string{},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "dockboard-debug.log",
		},
		Runtime: RuntimeConfig{
			RunPreChecks: true,
		},
	}
}

// Get config path
func GetConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dockboard", "config.yml"), nil
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "dockboard", "config.yml"), nil
}

// Load config
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	// If file doesn't exist, return default
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), nil
	}

	// start from defaults so missing keys keep their default value
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		// If YAML is invalid, return default config
		return DefaultConfig(), nil
	}

	cfg.applyDefaults()
	return cfg, nil
}

// zero or negative values are treated as "not set"
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.URL == "" {
		c.Server.URL = def.Server.URL
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = def.Server.RequestTimeout
	}
	if c.Server.LogTail <= 0 {
		c.Server.LogTail = def.Server.LogTail
	}
	if c.Server.LogCacheTTL < 0 {
		c.Server.LogCacheTTL = def.Server.LogCacheTTL
	}
	if c.Performance.PollRate <= 0 {
		c.Performance.PollRate = def.Performance.PollRate
	}
	if c.Performance.NudgeInterval <= 0 {
		c.Performance.NudgeInterval = def.Performance.NudgeInterval
	}
	if c.Notifications.DisplaySeconds <= 0 {
		c.Notifications.DisplaySeconds = def.Notifications.DisplaySeconds
	}
	if c.Notifications.MaxVisible <= 0 {
		c.Notifications.MaxVisible = def.Notifications.MaxVisible
	}
	if c.Actions.MaxConcurrent <= 0 {
		c.Actions.MaxConcurrent = def.Actions.MaxConcurrent
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Save config
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Performance.PollRate) * time.Second
}

func (c *Config) NudgeInterval() time.Duration {
	return time.Duration(c.Performance.NudgeInterval) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

func (c *Config) LogCacheTTL() time.Duration {
	return time.Duration(c.Server.LogCacheTTL) * time.Millisecond
}

func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.DisplaySeconds) * time.Second
}
