package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"carosearch/internal/eventbus"
)

// Environment variables that override the file
const (
	EnvAPIURL      = "CAROSEARCH_API_URL"
	EnvEnvironment = "CAROSEARCH_ENVIRONMENT"
	EnvAPIToken    = "CAROSEARCH_API_TOKEN"
	EnvDebounceMS  = "CAROSEARCH_DEBOUNCE_MS"
)

// Config represents the application configuration
type Config struct {
	Version       int               `toml:"version"`
	API           APISettings       `toml:"api"`
	UISettings    UISettings        `toml:"ui"`
	SavedSearches map[string]string `toml:"saved_searches"` // name -> query string
	LastLocation  string            `toml:"last_location,omitempty"`
	LogFile       string            `toml:"log_file"`
}

// APISettings select and tune the marketplace API
type APISettings struct {
	Environment    string  `toml:"environment"`
	BaseURL        string  `toml:"base_url,omitempty"`
	Token          string  `toml:"token,omitempty"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DebounceMS     int  `toml:"debounce_ms"`
	PageSize       int  `toml:"page_size"`
	CacheMinutes   int  `toml:"cache_minutes"`
	AutosaveOnExit bool `toml:"autosave_on_exit"` // remember the location on exit
}

// Timeout is the per-request API timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Debounce is the delay before the location follows a filter change
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UISettings.DebounceMS) * time.Millisecond
}

// CacheTTL is how long a search result is reused
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.UISettings.CacheMinutes) * time.Minute
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	getenv   func(string) string
}

// DefaultPath is ~/.config/carosearch/config.toml, or the platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "carosearch", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath(), getenv: os.Getenv}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects DefaultPath.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path, getenv: os.Getenv}
}

// Load loads the configuration from file, falling back to the defaults when
// there is none. Environment overrides are applied either way.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
		ApplyEnv(cfg, cs.getenv)
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Environment: cfg.API.Environment,
			APIURL:      cfg.API.BaseURL,
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
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.SavedSearches == nil {
		cfg.SavedSearches = make(map[string]string)
	}
	ApplyEnv(cfg, cs.getenv)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the token may be stored here
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overlays the CAROSEARCH_* variables onto cfg
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv(EnvEnvironment); v != "" {
		cfg.API.Environment = v
	}
	if v := getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv(EnvAPIToken); v != "" {
		cfg.API.Token = v
	}
	if v := getenv(EnvDebounceMS); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.UISettings.DebounceMS = ms
		} else {
			log.Printf("config: ignoring %s=%q", EnvDebounceMS, v)
		}
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are named) without overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Environment:    "development",
			TimeoutSeconds: 10,
			RateLimit:      5,
		},
		UISettings: UISettings{
			DebounceMS:     300,
			PageSize:       20,
			CacheMinutes:   5,
			AutosaveOnExit: true,
		},
		SavedSearches: make(map[string]string),
		LogFile:       "carosearch.log",
	}
}
