// Package config locates the taskpad configuration directory and loads
// settings from it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the configuration directory and the binary.
const AppName = "taskpad"

// Files kept in the configuration directory.
const (
	SettingsFile      = "config.yaml"
	DefaultDataFile   = "tasks.json"
	DefaultSQLiteFile = "tasks.db"
	OAuthClientFile   = "oauth_client.json"
	TokenFile         = "token.json"
)

// Config is the per-invocation configuration: where files live, the
// common flags, and the loaded settings.
type Config struct {
	Dir   string
	Debug bool
	Quiet bool

	Settings Settings
}

// New loads settings from configDir, or from DefaultConfigDir when empty.
// A missing settings file yields DefaultSettings.
func New(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	cfg := &Config{Dir: configDir}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	cfg.Settings = settings
	return cfg, nil
}

// DefaultConfigDir is $XDG_CONFIG_HOME/taskpad, falling back to
// $HOME/.config/taskpad and then to ./taskpad.
func DefaultConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName)
}

func (c *Config) path(name string) string { return filepath.Join(c.Dir, name) }

func (c *Config) SettingsPath() string    { return c.path(SettingsFile) }
func (c *Config) OAuthClientPath() string { return c.path(OAuthClientFile) }
func (c *Config) TokenPath() string       { return c.path(TokenFile) }

func (c *Config) HasSettings() bool    { return exists(c.SettingsPath()) }
func (c *Config) HasOAuthClient() bool { return exists(c.OAuthClientPath()) }
func (c *Config) HasToken() bool       { return exists(c.TokenPath()) }

// EnsureDir creates the config directory with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// RemoveToken deletes the stored OAuth token.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
