package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. TASKPAD_STORAGE_DRIVER.
const EnvPrefix = "TASKPAD"

// Notification backends.
const (
	BackendLocal       = "local"
	BackendGoogleTasks = "googletasks"
)

// Settings is the content of config.yaml.
type Settings struct {
	Storage       StorageSettings      `mapstructure:"storage" yaml:"storage"`
	Notifications NotificationSettings `mapstructure:"notifications" yaml:"notifications"`
}

// StorageSettings selects the key/value backend.
type StorageSettings struct {
	// Driver is one of file, memory, sqlite, postgres.
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the file or sqlite database path, relative to the config dir.
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	// DSN is the postgres connection string.
	DSN string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

// NotificationSettings controls the notification gateway.
type NotificationSettings struct {
	// Enabled grants notification permission to the local gateway.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Backend is local or googletasks.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// List is the Google Tasks list that receives reminders. Empty means default list.
	List string `mapstructure:"list" yaml:"list,omitempty"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Driver: "file",
		},
		Notifications: NotificationSettings{
			Enabled: true,
			Backend: BackendLocal,
		},
	}
}

// LoadSettings reads settings from path, applying TASKPAD_* environment
// overrides on top. A missing file yields the defaults plus overrides.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultSettings()
	v.SetDefault("storage.driver", def.Storage.Driver)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("storage.dsn", def.Storage.DSN)
	v.SetDefault("notifications.enabled", def.Notifications.Enabled)
	v.SetDefault("notifications.backend", def.Notifications.Backend)
	v.SetDefault("notifications.list", def.Notifications.List)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// WriteSettings writes s as YAML to path, creating the directory if needed.
func WriteSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
