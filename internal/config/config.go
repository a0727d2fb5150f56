package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"interestsearch/internal/eventbus"
)

const (
	// DefaultEndpoint is the interest autocomplete endpoint
	DefaultEndpoint = "https://be-v2.convose.com/autocomplete/interests"
	// DefaultPageSize is the number of records requested per page
	DefaultPageSize = 12
	// MaxPageSize bounds the page size accepted from configuration
	MaxPageSize = 100
	// DefaultScrollThreshold is the fraction of a viewport from the list end
	// at which the next page is requested
	DefaultScrollThreshold = 0.5
	// DefaultTimeout is the per-request HTTP timeout
	DefaultTimeout = 30 * time.Second
)

// Config represents the application configuration
type Config struct {
	Version   int        `toml:"version"`
	Endpoint  string     `toml:"endpoint"`
	AuthToken string     `toml:"auth_token"`
	PageSize  int        `toml:"page_size"`
	Timeout   Duration   `toml:"timeout"`
	LogFile   string     `toml:"log_file"`
	UI        UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Inverted        bool     `toml:"inverted"`
	ScrollThreshold float64  `toml:"scroll_threshold"`
	Debounce        Duration `toml:"debounce"` // 0 sends every keystroke
	ShowMatch       bool     `toml:"show_match"`
}

// Duration is a time.Duration that reads and writes as "30s" in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// ErrInvalidEndpoint is returned by Validate for endpoints that are not http(s) URLs
var ErrInvalidEndpoint = errors.New("invalid endpoint")

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
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the default config path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceAt creates a config service for the given path. An empty
// path selects the default.
func NewConfigServiceAt(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns $XDG_CONFIG_HOME/interestsearch/config.toml or its
// platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "interestsearch", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:     cs.filePath,
			Endpoint: cfg.Endpoint,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys absent from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
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

	// 0600: the file may hold the auth token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate normalises out-of-range values and rejects unusable endpoints
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.Timeout.Duration < 0 {
		c.Timeout.Duration = 0
	}
	if c.UI.ScrollThreshold <= 0 || c.UI.ScrollThreshold > 1 {
		c.UI.ScrollThreshold = DefaultScrollThreshold
	}
	if c.UI.Debounce.Duration < 0 {
		c.UI.Debounce.Duration = 0
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.Endpoint)
	}
	return nil
}

// Redacted returns a copy safe for display, with the token masked
func (c Config) Redacted() Config {
	if c.AuthToken != "" {
		c.AuthToken = "********"
	}
	return c
}

// Marshal renders the configuration as TOML
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Endpoint: DefaultEndpoint,
		PageSize: DefaultPageSize,
		Timeout:  Duration{DefaultTimeout},
		UI: UISettings{
			Inverted:        true,
			ScrollThreshold: DefaultScrollThreshold,
		},
	}
}
