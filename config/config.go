package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "STANDARDS"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Airtable  AirtableConfig  `mapstructure:"airtable"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Search    SearchConfig    `mapstructure:"search"`
	Prefs     PrefsConfig     `mapstructure:"prefs"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AirtableConfig holds the record store connection
type AirtableConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseID            string        `mapstructure:"base_id"`
	Table             string        `mapstructure:"table"`
	BaseURL           string        `mapstructure:"base_url"`
	View              string        `mapstructure:"view"`
	FilterFormula     string        `mapstructure:"filter_formula"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds catalog cache configuration
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds per-client request limits for the HTTP API
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// SearchConfig holds interactive search settings
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// PrefsConfig holds the local preference store
type PrefsConfig struct {
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from the optional .env file, environment
// variables and config files
func Load() (*Config, error) {
	return load(validate)
}

// LoadLocal reads the configuration for commands that only touch local
// state. Airtable credentials are not required.
func LoadLocal() (*Config, error) {
	return load(validateLocal)
}

func load(check func(*Config) error) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("standards")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "standards"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := check(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory. A missing file is not
// an error, and variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Airtable defaults; keys without a default are invisible to Unmarshal
	v.SetDefault("airtable.api_key", "")
	v.SetDefault("airtable.base_id", "")
	v.SetDefault("airtable.table", "Standards")
	v.SetDefault("airtable.base_url", "https://api.airtable.com/v0")
	v.SetDefault("airtable.view", "Grid view")
	v.SetDefault("airtable.filter_formula", `{Status} = "Live"`)
	v.SetDefault("airtable.requests_per_second", 5)
	v.SetDefault("airtable.timeout", "0s")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("search.debounce", "300ms")

	v.SetDefault("prefs.path", defaultPrefsPath())
	v.SetDefault("prefs.ttl", "8760h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".standards", "prefs.db")
	}
	return filepath.Join(dir, "standards", "prefs.db")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Airtable.APIKey == "" {
		return fmt.Errorf("Airtable API key is required (set %s_AIRTABLE_API_KEY)", EnvPrefix)
	}
	if config.Airtable.BaseID == "" {
		return fmt.Errorf("Airtable base id is required (set %s_AIRTABLE_BASE_ID)", EnvPrefix)
	}
	if config.Airtable.Table == "" {
		return errors.New("Airtable table name must not be empty")
	}
	if config.Airtable.RequestsPerSecond <= 0 {
		return fmt.Errorf("airtable.requests_per_second must be positive, got: %v", config.Airtable.RequestsPerSecond)
	}
	if config.Airtable.Timeout < 0 {
		return fmt.Errorf("airtable.timeout must not be negative, got: %s", config.Airtable.Timeout)
	}
	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got: %s", config.Cache.TTL)
	}
	if config.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("cache.cleanup_interval must be positive, got: %s", config.Cache.CleanupInterval)
	}
	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}
	if config.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative, got: %s", config.Search.Debounce)
	}
	return validateLocal(config)
}

// validateLocal checks the settings every command needs.
func validateLocal(config *Config) error {
	if config.Prefs.TTL < 0 {
		return fmt.Errorf("prefs.ttl must not be negative, got: %s", config.Prefs.TTL)
	}
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got: %s", config.Log.Level)
	}
	return nil
}
