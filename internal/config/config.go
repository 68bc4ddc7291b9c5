package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"eventscout/internal/domain"
)

// PlaceholderAPIURL is used when no endpoint is configured. It does not serve
// events; deployments must set api_url or EVENTSCOUT_API_URL.
const PlaceholderAPIURL = "http://default-url.com"

// Environment variables read once at startup
const (
	EnvAPIURL       = "EVENTSCOUT_API_URL"
	EnvLegacyAPIURL = "VITE_API_URL"
	EnvLogLevel     = "EVENTSCOUT_LOG_LEVEL"
)

// ErrPlaceholderEndpoint reports that the search endpoint was never configured
var ErrPlaceholderEndpoint = errors.New("search endpoint is not configured, using placeholder " + PlaceholderAPIURL)

// Config represents the application configuration
type Config struct {
	APIURL         string         `toml:"api_url"`
	RequestTimeout string         `toml:"request_timeout,omitempty"` // Go duration, empty or "0" disables
	MetricsAddr    string         `toml:"metrics_addr,omitempty"`
	Search         SearchSettings `toml:"search"`
	Log            LogSettings    `toml:"log"`
}

// SearchSettings holds the search form defaults
type SearchSettings struct {
	DefaultMaxEvents int    `toml:"default_max_events"`
	ShowDescriptions bool   `toml:"show_descriptions"`
	DefaultSort      string `toml:"default_sort"`
}

// LogSettings controls the log file
type LogSettings struct {
	File  string `toml:"file,omitempty"`
	Level string `toml:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigServiceAt creates a config service backed by path
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "eventscout", "config.toml")
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Unset fields keep
// their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIURL: "",
		Search: SearchSettings{
			DefaultMaxEvents: domain.DefaultMaxEvents,
			ShowDescriptions: false,
			DefaultSort:      domain.SortDefault.String(),
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// ApplyEnv overlays environment variables. getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	} else if v := strings.TrimSpace(getenv(EnvLegacyAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

// Endpoint returns the search endpoint, falling back to the placeholder
func (c *Config) Endpoint() string {
	if u := strings.TrimSpace(c.APIURL); u != "" {
		return u
	}
	return PlaceholderAPIURL
}

// UsesPlaceholder reports whether no real endpoint was configured
func (c *Config) UsesPlaceholder() bool {
	return c.Endpoint() == PlaceholderAPIURL
}

// Timeout parses RequestTimeout. Zero means no client-side timeout.
func (c *Config) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.RequestTimeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("request_timeout must not be negative, got %s", d)
	}
	return d, nil
}

// SortKey parses the configured default sort
func (c *Config) SortKey() (domain.SortKey, error) {
	return domain.ParseSortKey(c.Search.DefaultSort)
}

// Validate checks the configuration. Hard errors are joined together; a
// placeholder endpoint is reported by wrapping ErrPlaceholderEndpoint so the
// caller can decide between a warning and a startup failure.
func (c *Config) Validate() error {
	var errs []error

	endpoint := c.Endpoint()
	u, err := url.Parse(endpoint)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid api_url %q: %w", endpoint, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api_url %q must use http or https", endpoint))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api_url %q has no host", endpoint))
	}

	if !domain.IsAllowedMaxEvents(c.Search.DefaultMaxEvents) {
		errs = append(errs, fmt.Errorf("default_max_events must be one of %v, got %d",
			domain.AllowedMaxEvents, c.Search.DefaultMaxEvents))
	}
	if _, err := c.SortKey(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if c.UsesPlaceholder() {
		return ErrPlaceholderEndpoint
	}
	return nil
}
