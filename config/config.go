package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Lookup  LookupConfig
	Cache   CacheConfig
	Engines EnginesConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LookupConfig holds orchestration configuration
type LookupConfig struct {
	// CallTimeout bounds each individual engine lookup.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" is supported
	TTL  time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds one engine's configuration. APIKey and
// RequestsPerMinute only apply to engines that use them.
type EngineConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	BaseURL           string `mapstructure:"base_url"`
	Priority          int    `mapstructure:"priority"`
	APIKey            string `mapstructure:"api_key"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// EnginesConfig holds per-engine configuration
type EnginesConfig struct {
	OpenFoodFacts    EngineConfig `mapstructure:"openfoodfacts"`
	OpenBeautyFacts  EngineConfig `mapstructure:"openbeautyfacts"`
	OpenPetFoodFacts EngineConfig `mapstructure:"openpetfoodfacts"`
	OpenLibrary      EngineConfig `mapstructure:"openlibrary"`
	GoogleBooks      EngineConfig `mapstructure:"googlebooks"`
	OpenFDA          EngineConfig `mapstructure:"openfda"`
	UPCItemDB        EngineConfig `mapstructure:"upcitemdb"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scanlens/")

	// Environment variable settings
	v.SetEnvPrefix("SCANLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"app://*"})

	// Lookup defaults
	v.SetDefault("lookup.call_timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Engine defaults: priorities form the fallback tiers. Category
	// catalogs come first, the generic UPC directory is the last resort.
	v.SetDefault("engines.openfoodfacts.enabled", true)
	v.SetDefault("engines.openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("engines.openfoodfacts.priority", 1)
	v.SetDefault("engines.openfoodfacts.requests_per_minute", 100)

	v.SetDefault("engines.openlibrary.enabled", true)
	v.SetDefault("engines.openlibrary.base_url", "https://openlibrary.org")
	v.SetDefault("engines.openlibrary.priority", 1)

	v.SetDefault("engines.openfda.enabled", true)
	v.SetDefault("engines.openfda.base_url", "https://api.fda.gov")
	v.SetDefault("engines.openfda.priority", 1)
	v.SetDefault("engines.openfda.api_key", "")

	v.SetDefault("engines.googlebooks.enabled", true)
	v.SetDefault("engines.googlebooks.base_url", "https://www.googleapis.com")
	v.SetDefault("engines.googlebooks.priority", 2)
	// Empty default so AutomaticEnv can resolve SCANLENS_ENGINES_*_API_KEY
	// overrides for keys that never appear in a config file.
	v.SetDefault("engines.googlebooks.api_key", "")

	v.SetDefault("engines.openbeautyfacts.enabled", true)
	v.SetDefault("engines.openbeautyfacts.base_url", "https://world.openbeautyfacts.org")
	v.SetDefault("engines.openbeautyfacts.priority", 2)
	v.SetDefault("engines.openbeautyfacts.requests_per_minute", 100)

	v.SetDefault("engines.openpetfoodfacts.enabled", true)
	v.SetDefault("engines.openpetfoodfacts.base_url", "https://world.openpetfoodfacts.org")
	v.SetDefault("engines.openpetfoodfacts.priority", 2)
	v.SetDefault("engines.openpetfoodfacts.requests_per_minute", 100)

	v.SetDefault("engines.upcitemdb.enabled", true)
	v.SetDefault("engines.upcitemdb.base_url", "https://api.upcitemdb.com")
	v.SetDefault("engines.upcitemdb.priority", 3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Lookup.CallTimeout <= 0 {
		return fmt.Errorf("lookup call_timeout must be positive, got: %s", config.Lookup.CallTimeout)
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	engines := map[string]EngineConfig{
		"openfoodfacts":    config.Engines.OpenFoodFacts,
		"openbeautyfacts":  config.Engines.OpenBeautyFacts,
		"openpetfoodfacts": config.Engines.OpenPetFoodFacts,
		"openlibrary":      config.Engines.OpenLibrary,
		"googlebooks":      config.Engines.GoogleBooks,
		"openfda":          config.Engines.OpenFDA,
		"upcitemdb":        config.Engines.UPCItemDB,
	}

	anyEnabled := false
	for name, e := range engines {
		if !e.Enabled {
			continue
		}
		anyEnabled = true
		if e.BaseURL == "" {
			return fmt.Errorf("engine %s is enabled but has no base_url", name)
		}
		if e.Priority < 1 {
			return fmt.Errorf("engine %s priority must be >= 1, got: %d", name, e.Priority)
		}
	}
	if !anyEnabled {
		return fmt.Errorf("at least one lookup engine must be enabled")
	}

	return nil
}
