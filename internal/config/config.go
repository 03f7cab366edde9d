// Package config loads Shield's settings from ~/.shield/config.json,
// a .env file and SHIELD_* environment variables, in that order of
// increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	pe "github.com/shieldai/shield/internal/errors"
)

// DefaultBaseURL is the origin the inference service listens on in a
// default local deployment.
const DefaultBaseURL = "http://127.0.0.1:8000"

// EnvPrefix is the prefix envconfig uses for overrides (SHIELD_BASE_URL, ...).
const EnvPrefix = "shield"

// Config holds the application configuration
type Config struct {
	BaseURL              string `json:"base_url,omitempty"`              // Origin of the inference service
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "shield", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a premium settles
	LogPath              string `json:"log_path,omitempty"`              // Debug log file

	mu       sync.RWMutex
	filePath string
}

// envOverrides mirrors the overridable Config fields for envconfig.
// Pointers distinguish "unset" from the zero value.
type envOverrides struct {
	BaseURL       string `envconfig:"BASE_URL"`
	Theme         string `envconfig:"THEME"`
	Notifications *bool  `envconfig:"NOTIFICATIONS"`
	LogPath       string `envconfig:"LOG_PATH"`
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".shield"), nil
}

// DefaultPath returns the path of the user's config file.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the user's config file (if any), then applies .env and
// environment overrides, and validates the result.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path, ".env")
}

// LoadFrom is Load with explicit file locations. An empty dotenvPath skips
// .env loading; a missing .env file is not an error.
func LoadFrom(path, dotenvPath string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, pe.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, pe.ConfigLoadFailed(path, err)
		}
	}

	if dotenvPath != "" {
		// godotenv never overwrites variables that are already set.
		if err := godotenv.Load(dotenvPath); err != nil && !os.IsNotExist(err) {
			return nil, pe.ConfigLoadFailed(dotenvPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return pe.ConfigLoadFailed("environment", err)
	}
	if env.BaseURL != "" {
		c.BaseURL = env.BaseURL
	}
	if env.Theme != "" {
		c.Theme = env.Theme
	}
	if env.Notifications != nil {
		c.NotificationsEnabled = *env.Notifications
	}
	if env.LogPath != "" {
		c.LogPath = env.LogPath
	}
	return nil
}

// ensureDefaults fills unset fields. Only called during Load, before the
// Config is shared.
func (c *Config) ensureDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Validate checks that the base URL is a bare http(s) origin.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ValidateBaseURL(c.BaseURL)
}

// ValidateBaseURL reports whether raw is an absolute http or https origin
// with no path, query or fragment.
func ValidateBaseURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return pe.ConfigInvalid("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return pe.ConfigInvalid(fmt.Sprintf("base url %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pe.ConfigInvalid(fmt.Sprintf("base url %q must use http or https", raw))
	}
	if u.Host == "" {
		return pe.ConfigInvalid(fmt.Sprintf("base url %q has no host", raw))
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return pe.ConfigInvalid(fmt.Sprintf("base url %q must be an origin without a path", raw))
	}
	return nil
}

// Save writes the config to its file, creating the directory if needed.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pe.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pe.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pe.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is loaded from and saved to.
func (c *Config) Path() string {
	return c.filePath
}

// GetBaseURL returns the inference service origin
func (c *Config) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BaseURL
}

// SetBaseURL validates and sets the inference service origin
func (c *Config) SetBaseURL(raw string) error {
	if err := ValidateBaseURL(raw); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BaseURL = strings.TrimRight(strings.TrimSpace(raw), "/")
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLogPath returns the configured log file, or "" for the default
func (c *Config) GetLogPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LogPath
}

// SetLogPath sets the debug log file; "" selects the default
func (c *Config) SetLogPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LogPath = path
}
