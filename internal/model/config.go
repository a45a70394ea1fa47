package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// APIConfig holds the mailbox provider connection settings.
type APIConfig struct {
	// BaseURL is the root URL of the Mail.tm compatible API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every remote operation.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// RequestsPerSec caps the outgoing request rate.
	RequestsPerSec float64 `mapstructure:"requests_per_sec" yaml:"requests_per_sec"`
}

// PollConfig holds the background refresh settings.
type PollConfig struct {
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`
}

// ExportConfig controls where saved messages are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the log file. The terminal UI owns stdout, so logs
// never go there.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// AccountConfig holds settings for the generated mailbox account.
type AccountConfig struct {
	// SaveCredentials stores the generated address and password in the
	// system keyring so the mailbox can be reopened in a browser later.
	SaveCredentials bool `mapstructure:"save_credentials" yaml:"save_credentials"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Poll    PollConfig    `mapstructure:"poll" yaml:"poll"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Account AccountConfig `mapstructure:"account" yaml:"account"`
}

// Timeout returns the per-operation timeout.
func (c *AppConfig) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// PollInterval returns the delay between background refreshes.
func (c *AppConfig) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalSec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tempmail/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tempmail", "config.yaml")
}

// DefaultExportDir returns ~/Documents/tempmail.
func DefaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tempmail")
	}
	return filepath.Join(home, "Documents", "tempmail")
}

// DefaultLogPath returns the log file location under the user cache dir.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tempmail.log")
	}
	return filepath.Join(dir, "tempmail", "tempmail.log")
}

// defaultAppConfig returns the built-in configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:        "https://api.mail.tm",
			TimeoutSec:     10,
			RequestsPerSec: 8,
		},
		Poll: PollConfig{
			IntervalSec: 4,
		},
		Export: ExportConfig{
			Dir: DefaultExportDir(),
		},
		Log: LogConfig{
			File:  DefaultLogPath(),
			Level: "info",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout_sec", def.API.TimeoutSec)
	v.SetDefault("api.requests_per_sec", def.API.RequestsPerSec)
	v.SetDefault("poll.interval_sec", def.Poll.IntervalSec)
	v.SetDefault("export.dir", def.Export.Dir)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("account.save_credentials", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = def.API.TimeoutSec
	}
	if cfg.Poll.IntervalSec <= 0 {
		cfg.Poll.IntervalSec = def.Poll.IntervalSec
	}
	if cfg.API.RequestsPerSec <= 0 {
		cfg.API.RequestsPerSec = def.API.RequestsPerSec
	}
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)

	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
