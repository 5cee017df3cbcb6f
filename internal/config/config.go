// Package config loads petcli settings from an optional YAML file, a .env
// file, and PETCLI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "PETCLI_CONFIG"
	EnvAPIURL     = "PETCLI_API_URL"
	EnvAPIToken   = "PETCLI_API_TOKEN"
	EnvLogLevel   = "PETCLI_LOG_LEVEL"
	EnvTimeout    = "PETCLI_TIMEOUT"
)

// Defaults.
const (
	DefaultAPIURL   = "http://localhost:8080/api"
	DefaultLogLevel = "warn"
	DefaultTimeout  = "15s"
)

// Config holds the resolved settings.
type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the shop backend client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Timeout string `yaml:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
			Timeout: DefaultTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/petcli/config.yaml on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "petcli", "config.yaml")
}

// Load builds a Config from defaults, then a YAML file, then environment
// variables. The file is path, else $PETCLI_CONFIG, else DefaultPath. A file
// named by path or $PETCLI_CONFIG must exist; a missing default file is
// skipped. A .env file in the working directory is loaded into the
// environment first without overriding variables that are already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
		explicit = false
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.API.Timeout = v
	}
}

// TimeoutDuration returns the API timeout, or the default for an empty value.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	raw := c.API.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid api timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// Validate checks the API URL and timeout.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: must be an absolute http or https URL", c.API.BaseURL)
	}

	d, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("invalid api timeout %q: must be positive", c.API.Timeout)
	}
	return nil
}
