// Package config handles loading todoview.toml configuration files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/idilsaglam/todoview/internal/env"
	"github.com/idilsaglam/todoview/internal/session"
)

const (
	DefaultBaseURL    = "https://dummyjson.com/todos"
	DefaultLimit      = session.DefaultLimit
	DefaultUserID     = session.DefaultUserID
	DefaultTheme      = "classic"
	DefaultDateFormat = "1/2/2006"

	projectFileName = "todoview.toml"
)

// Config represents the todoview.toml configuration file.
type Config struct {
	API API `toml:"api"`
	UI  UI  `toml:"ui"`
	Log Log `toml:"log"`
}

// API configures the remote todo endpoint.
type API struct {
	// BaseURL is the list endpoint; creates go to BaseURL + "/add".
	BaseURL string `toml:"base-url"`
	// Limit caps how many todos a fetch asks for.
	Limit int `toml:"limit"`
	// UserID is the owner id sent with every create.
	UserID int `toml:"user-id"`
	// Timeout is a Go duration string. Empty means no client timeout.
	Timeout string `toml:"timeout"`
}

// UI contains presentation settings.
type UI struct {
	Theme      string `toml:"theme"`
	DateFormat string `toml:"date-format"`
}

// Log configures where structured logs go.
type Log struct {
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: API{BaseURL: DefaultBaseURL, Limit: DefaultLimit, UserID: DefaultUserID},
		UI:  UI{Theme: DefaultTheme, DateFormat: DefaultDateFormat},
	}
}

// Load builds the configuration from defaults, the global config file,
// dir/todoview.toml and TODOVIEW_* environment variables, in that order.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	for _, path := range []string{globalPath, filepath.Join(dir, projectFileName)} {
		fileCfg, meta, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = mergeConfig(cfg, fileCfg, meta)
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base-url %q", c.API.BaseURL)
	}
	if c.API.Limit <= 0 {
		return fmt.Errorf("api limit must be positive, got %d", c.API.Limit)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses API.Timeout; zero means none.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	raw := strings.TrimSpace(c.API.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid api timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("api timeout must not be negative, got %s", d)
	}
	return d, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "todoview", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfig(base, over *Config, meta toml.MetaData) *Config {
	merged := *base
	merged.API.BaseURL = mergeString(meta.IsDefined("api", "base-url"), over.API.BaseURL, base.API.BaseURL)
	merged.API.Timeout = mergeString(meta.IsDefined("api", "timeout"), over.API.Timeout, base.API.Timeout)
	if meta.IsDefined("api", "limit") {
		merged.API.Limit = over.API.Limit
	}
	if meta.IsDefined("api", "user-id") {
		merged.API.UserID = over.API.UserID
	}
	merged.UI.Theme = mergeString(meta.IsDefined("ui", "theme"), over.UI.Theme, base.UI.Theme)
	merged.UI.DateFormat = mergeString(meta.IsDefined("ui", "date-format"), over.UI.DateFormat, base.UI.DateFormat)
	merged.Log.File = mergeString(meta.IsDefined("log", "file"), over.Log.File, base.Log.File)
	return &merged
}

func mergeString(defined bool, value, fallback string) string {
	if defined {
		return strings.TrimSpace(value)
	}
	return fallback
}

func applyEnv(cfg *Config) {
	cfg.API.BaseURL = env.GetString("TODOVIEW_BASE_URL", cfg.API.BaseURL)
	cfg.API.Limit = env.GetInt("TODOVIEW_LIMIT", cfg.API.Limit)
	cfg.API.Timeout = env.GetString("TODOVIEW_TIMEOUT", cfg.API.Timeout)
	cfg.UI.Theme = env.GetString("TODOVIEW_THEME", cfg.UI.Theme)
	cfg.Log.File = env.GetString("TODOVIEW_LOG_FILE", cfg.Log.File)
}
