// Package config loads application configuration from file and environment
// and sets up the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Places    PlacesConfig    `yaml:"places" mapstructure:"places"`
	Grid      GridConfig      `yaml:"grid" mapstructure:"grid"`
	Filter    FilterConfig    `yaml:"filter" mapstructure:"filter"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Gazetteer GazetteerConfig `yaml:"gazetteer" mapstructure:"gazetteer"`
}

// PlacesConfig holds provider API settings. AltKey/AltGeocodeURL configure
// the optional alternate geocoder used by the resolver chain.
type PlacesConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	SearchURL     string  `yaml:"search_url" mapstructure:"search_url"`
	GeocodeURL    string  `yaml:"geocode_url" mapstructure:"geocode_url"`
	AltKey        string  `yaml:"alt_key" mapstructure:"alt_key"`
	AltGeocodeURL string  `yaml:"alt_geocode_url" mapstructure:"alt_geocode_url"`
	RateLimit     float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// GridConfig configures grid generation defaults.
type GridConfig struct {
	Preset      string `yaml:"preset" mapstructure:"preset"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// FilterConfig holds the default filter settings applied to analyses.
type FilterConfig struct {
	RadiusKM   float64 `yaml:"radius_km" mapstructure:"radius_km"`
	MinRating  float64 `yaml:"min_rating" mapstructure:"min_rating"`
	MaxResults int     `yaml:"max_results" mapstructure:"max_results"`
	SortBy     string  `yaml:"sort_by" mapstructure:"sort_by"`
}

// StoreConfig configures the analysis history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// GazetteerConfig points at an optional extra place-name file.
type GazetteerConfig struct {
	ExtraFile string `yaml:"extra_file" mapstructure:"extra_file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOCALRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("places.rate_limit", 10.0)
	v.SetDefault("grid.preset", "default")
	v.SetDefault("grid.concurrency", 4)
	v.SetDefault("filter.radius_km", 5)
	v.SetDefault("filter.min_rating", 0)
	v.SetDefault("filter.max_results", 20)
	v.SetDefault("filter.sort_by", "relevance")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "localrank.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
