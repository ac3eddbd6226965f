// Package config handles the XDG configuration directory and the
// taskpad config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the config filename inside the app directory.
	ConfigFile = "config.yaml"

	// DefaultTimeoutSeconds is the per-request timeout applied when
	// the config file does not set one.
	DefaultTimeoutSeconds = 5
)

// Config holds connection settings and per-invocation flags.
type Config struct {
	// Dir is the configuration directory path. Not serialized.
	Dir string `yaml:"-"`

	// BaseURL is the server address; requests go to BaseURL + "/api/...".
	BaseURL string `yaml:"base_url"`

	// Token is the bearer credential forwarded on every request.
	// Empty means unauthenticated.
	Token string `yaml:"token,omitempty"`

	// TimeoutSeconds is the fixed client-side request timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Quiet suppresses informational output. Not serialized.
	Quiet bool `yaml:"-"`

	// Debug enables diagnostic logging. Not serialized.
	Debug bool `yaml:"-"`
}

// New creates a Config from the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpad or
// $HOME/.config/taskpad. The config file is optional; environment
// variables TASKPAD_BASE_URL and TASKPAD_TOKEN override file values.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	data, err := os.ReadFile(cfg.Path())
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if v := os.Getenv("TASKPAD_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TASKPAD_TOKEN"); v != "" {
		cfg.Token = v
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Save writes the serializable settings back to the config file with
// mode 0600 (the token is a credential).
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFile, err)
	}
	return nil
}

// HasBaseURL checks whether a server address is configured.
func (c *Config) HasBaseURL() bool {
	return c.BaseURL != ""
}

// HasToken checks whether a credential is stored.
func (c *Config) HasToken() bool {
	return c.Token != ""
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	secs := c.TimeoutSeconds
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}
