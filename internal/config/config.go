// Package config handles the XDG configuration directory and the files kept in it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"

	"cues/internal/clock"
)

const (
	// AppName is the application directory name.
	AppName = "cues"

	// SettingsFile holds the API URL and the active project.
	SettingsFile = "config.yaml"

	// TokenFile is the stored access/refresh token filename.
	TokenFile = "token.json"

	// DefaultAPIURL is the base URL of the task service.
	DefaultAPIURL = "http://localhost:5000/api"

	// APIURLEnv overrides the API base URL.
	APIURLEnv = "CUES_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug logs. Nil means discard.
	Logger *zap.Logger

	// ErrOut receives warnings for the user. Nil means discard.
	ErrOut io.Writer

	// Clock supplies "now" for date resolution and display. Nil means the system clock.
	Clock clock.Clock
}

// Settings is the persisted content of config.yaml.
type Settings struct {
	APIURL           string `yaml:"api_url,omitempty"`
	CurrentProject   string `yaml:"current_project"`
	CurrentProjectID int    `yaml:"current_project_id"`
}

// HasActiveProject reports whether a project has been selected with `cues use`.
func (s Settings) HasActiveProject() bool {
	return s.CurrentProjectID != 0
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/cues or $HOME/.config/cues.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
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

// Log returns the configured logger or a no-op logger.
func (c *Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Warnf prints a one-line warning to ErrOut.
func (c *Config) Warnf(format string, args ...any) {
	if c.ErrOut == nil {
		return
	}
	fmt.Fprintf(c.ErrOut, "warning: "+format+"\n", args...)
}

// Now returns the current time from the configured clock.
func (c *Config) Now() time.Time {
	if c.Clock == nil {
		return clock.System{}.Now()
	}
	return c.Clock.Now()
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// LoadSettings reads config.yaml. A missing file yields zero Settings.
func (c *Config) LoadSettings() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
}

// SaveSettings writes config.yaml, creating the config directory if needed.
func (c *Config) SaveSettings(s Settings) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.SettingsPath(), data, 0600)
}

// UpdateSettings loads, modifies and saves config.yaml.
func (c *Config) UpdateSettings(fn func(*Settings)) error {
	s, err := c.LoadSettings()
	if err != nil {
		return err
	}
	fn(&s)
	return c.SaveSettings(s)
}

// APIURL returns the base URL for API calls.
// Precedence: CUES_API_URL, then api_url in config.yaml, then DefaultAPIURL.
func (c *Config) APIURL() string {
	if u := os.Getenv(APIURLEnv); u != "" {
		return u
	}
	if s, err := c.LoadSettings(); err == nil && s.APIURL != "" {
		return s.APIURL
	}
	return DefaultAPIURL
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// LoadToken reads the stored token. The error wraps fs.ErrNotExist when
// there is no token file.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	return &token, nil
}

// SaveToken writes the token with mode 0600.
func (c *Config) SaveToken(token *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
