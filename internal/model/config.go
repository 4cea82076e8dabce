package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override,
// e.g. PORTFOLIO_API_BASE_URL for api.base_url.
const EnvPrefix = "PORTFOLIO"

// APIConfig holds the backend connection settings.
type APIConfig struct {
	// BaseURL is the root of the server exposing /api/projects.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// ToastSec is how long a notification stays visible.
	ToastSec int `mapstructure:"toast_sec" yaml:"toast_sec"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// Timeout returns the request timeout as a duration.
func (c *AppConfig) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// ToastDuration returns how long notifications are shown.
func (c *AppConfig) ToastDuration() time.Duration {
	return time.Duration(c.Display.ToastSec) * time.Second
}

// ConfigDir returns ~/.config/portfolio, falling back to the working
// directory when the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "portfolio")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/portfolio/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:5000",
			TimeoutSec: 15,
		},
		Display: DisplayConfig{
			ToastSec: 3,
		},
		Log: LogConfig{
			File:  filepath.Join(ConfigDir(), "portfolio.log"),
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with PORTFOLIO_ override file values.
// A missing file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults double as the key list AutomaticEnv consults on Unmarshal.
	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout_sec", def.API.TimeoutSec)
	v.SetDefault("display.toast_sec", def.Display.ToastSec)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		_, pathErr := err.(*os.PathError)
		if !notFound && !pathErr {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = def.API.TimeoutSec
	}
	if cfg.Display.ToastSec <= 0 {
		cfg.Display.ToastSec = def.Display.ToastSec
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("parsing config %s: api.base_url is empty", path)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_sec", cfg.API.TimeoutSec)
	v.Set("display.toast_sec", cfg.Display.ToastSec)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
