package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "upnext"

type Config struct {
	Database DatabaseConfig `koanf:"database"`

	// Last.fm (enables "up next" suggestions when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Suggestions SuggestionsConfig `koanf:"suggestions"`
	Queue       QueueConfig       `koanf:"queue"`
	Log         LogConfig         `koanf:"log"`
}

// DatabaseConfig holds the location of the application database.
type DatabaseConfig struct {
	Path string `koanf:"path"` // empty means the XDG data dir
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// SuggestionsConfig holds the "up next" suggestion settings.
type SuggestionsConfig struct {
	Limit        int `koanf:"limit"`          // candidates requested per fetch (1-100, default: 25)
	CacheTTLDays int `koanf:"cache_ttl_days"` // cache TTL in days (default: 7)
	Visible      int `koanf:"visible"`        // suggestion rows shown under the queue (default: 5)
}

// QueueConfig holds queue screen behaviour.
type QueueConfig struct {
	SwipeToRemove *bool `koanf:"swipe_to_remove"` // allow removing entries from the queue screen (default: true)
	Loop          bool  `koanf:"loop"`            // start with queue loop enabled
}

// LogConfig holds the log file settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	File  string `koanf:"file"`  // empty means the XDG state dir
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom merges the existing files among paths, later files winning.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/upnext/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm suggestions are configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// GetSuggestionsConfig returns the suggestion settings with defaults applied.
func (c *Config) GetSuggestionsConfig() SuggestionsConfig {
	cfg := c.Suggestions

	if cfg.Limit <= 0 || cfg.Limit > 100 {
		cfg.Limit = 25
	}
	if cfg.CacheTTLDays <= 0 {
		cfg.CacheTTLDays = 7
	}
	if cfg.Visible <= 0 {
		cfg.Visible = 5
	}

	return cfg
}

// SwipeToRemove reports whether queue entries may be removed.
func (c *Config) SwipeToRemove() bool {
	if c.Queue.SwipeToRemove == nil {
		return true
	}
	return *c.Queue.SwipeToRemove
}

// LogLevel returns the configured level, "info" when unset.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}
