package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the configuration for the application.
type Config struct {
	EntriesDir       string `mapstructure:"entries_dir"`       // Directory holding one file per diary date
	StalenessMinutes int    `mapstructure:"staleness_minutes"` // Max search snapshot age before rebuild
	LogDir           string `mapstructure:"log_dir"`           // Log file directory; empty discards logs
	LogLevel         string `mapstructure:"log_level"`         // debug, info, warn, error
}

// StalenessWindow returns the snapshot staleness window as a duration.
func (c *Config) StalenessWindow() time.Duration {
	return time.Duration(c.StalenessMinutes) * time.Minute
}

// DefaultEntriesDir returns a system-appropriate default location for the
// entries directory.
func DefaultEntriesDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "entries"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "daybook", "entries")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "daybook", "entries")
	default: // Primarily Linux, but also other UNIX-like systems.
		return filepath.Join(homeDir, ".local", "share", "daybook", "entries")
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(homeDir, ".config", "daybook", "config.yaml")
}

// Load reads the config file at path (or the default location when path is
// empty). A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)

	v.SetDefault("entries_dir", DefaultEntriesDir())
	v.SetDefault("staleness_minutes", 5)
	v.SetDefault("log_dir", "")
	v.SetDefault("log_level", "info")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file %q: %w", path, err)
	}

	resolved, err := ResolvePath(cfg.EntriesDir)
	if err != nil {
		return nil, err
	}
	cfg.EntriesDir = resolved

	return cfg, nil
}

// ResolvePath expands a leading ~ and makes the path absolute.
func ResolvePath(p string) (string, error) {
	if strings.HasPrefix(p, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", p, err)
		}
		p = filepath.Join(homeDir, p[2:])
	}

	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", p, err)
	}
	return absPath, nil
}
