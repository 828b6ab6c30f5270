package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "JSONPROPS_"

	defaultConfigName     = "application"
	defaultClasspathRoot  = "."
	defaultMaxDepth       = 64
	defaultPropertyKey    = "customize.property.message"
	defaultLogLevel       = "info"
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	ConfigName         string   `yaml:"config_name" env:"CONFIG_NAME"`
	SearchLocations    []string `yaml:"search_locations" env:"SEARCH_LOCATIONS"`
	AdditionalLocation string   `yaml:"additional_location" env:"ADDITIONAL_LOCATION"`
	ClasspathRoot      string   `yaml:"classpath_root" env:"CLASSPATH_ROOT"`
	MaxDepth           int      `yaml:"max_depth" env:"MAX_DEPTH"`
	PropertyKey        string   `yaml:"property_key" env:"PROPERTY_KEY"`
	SchemaFile         string   `yaml:"schema_file" env:"SCHEMA_FILE"`
	LogLevel           string   `yaml:"log_level" env:"LOG_LEVEL"`

	Serve                bool          `yaml:"serve" env:"SERVE"`
	Port                 string        `yaml:"port" env:"PORT"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout         time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout          time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	EnableRequestLogging bool          `yaml:"enable_request_logging" env:"ENABLE_REQUEST_LOGGING"`
	RateLimitRPS         float64       `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst       int           `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`
}

// CLIOverrides holds command-line flag overrides. Nil fields are not set.
type CLIOverrides struct {
	ConfigFile         string
	ConfigName         *string
	SearchLocations    []string
	AdditionalLocation *string
	ClasspathRoot      *string
	MaxDepth           *int
	PropertyKey        *string
	SchemaFile         *string
	LogLevel           *string
	Serve              bool
	Port               *string
	RateLimitRPS       *float64
	RateLimitBurst     *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// YAML keys that are present replace defaults, absent ones keep them
	if overrides != nil && overrides.ConfigFile != "" {
		if err := loadFromFile(&cfg, overrides.ConfigFile); err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		ConfigName:           defaultConfigName,
		SearchLocations:      []string{"classpath:/", "classpath:/config/"},
		ClasspathRoot:        defaultClasspathRoot,
		MaxDepth:             defaultMaxDepth,
		PropertyKey:          defaultPropertyKey,
		LogLevel:             defaultLogLevel,
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile decodes a YAML file over cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	return nil
}

// applyEnvConfig applies environment variable configuration. Unset variables
// leave the current values untouched.
func applyEnvConfig(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// applyCLIOverrides merges the non-empty command-line values over cfg.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	var layer Config

	if overrides.ConfigName != nil {
		layer.ConfigName = strings.TrimSpace(*overrides.ConfigName)
	}
	if len(overrides.SearchLocations) > 0 {
		layer.SearchLocations = overrides.SearchLocations
	}
	if overrides.AdditionalLocation != nil {
		layer.AdditionalLocation = *overrides.AdditionalLocation
	}
	if overrides.ClasspathRoot != nil {
		layer.ClasspathRoot = *overrides.ClasspathRoot
	}
	if overrides.MaxDepth != nil {
		if *overrides.MaxDepth <= 0 {
			return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, *overrides.MaxDepth)
		}
		layer.MaxDepth = *overrides.MaxDepth
	}
	if overrides.PropertyKey != nil {
		layer.PropertyKey = *overrides.PropertyKey
	}
	if overrides.SchemaFile != nil {
		layer.SchemaFile = *overrides.SchemaFile
	}
	if overrides.LogLevel != nil {
		layer.LogLevel = *overrides.LogLevel
	}
	layer.Serve = overrides.Serve
	if overrides.Port != nil {
		layer.Port = *overrides.Port
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		layer.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		layer.RateLimitBurst = *overrides.RateLimitBurst
	}

	if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge CLI overrides: %w", err)
	}

	// zero is a meaningful rate limit setting that Merge would skip
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 0
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 0
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	var errs []error
	if strings.TrimSpace(cfg.ConfigName) == "" {
		errs = append(errs, errors.New("config name cannot be empty"))
	}
	if cfg.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max depth must be >= 1, got %d", cfg.MaxDepth))
	}
	if strings.TrimSpace(cfg.PropertyKey) == "" {
		errs = append(errs, errors.New("property key cannot be empty"))
	}
	if cfg.RateLimitRPS < 0 {
		errs = append(errs, errors.New("rate limit rps must be >= 0"))
	}
	if cfg.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit burst must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// AdditionalLocations splits the comma-separated additional location setting.
func (c Config) AdditionalLocations() []string {
	if strings.TrimSpace(c.AdditionalLocation) == "" {
		return nil
	}

	parts := strings.Split(c.AdditionalLocation, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
