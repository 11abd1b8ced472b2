// Package config loads casefang settings from .casefang.yaml, CASEFANG_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
)

// Defaults.
const (
	DefaultCasing       = "screamingSnakeCase"
	DefaultFormat       = "text"
	DefaultColor        = "auto"
	DefaultWorkers      = 0
	DefaultMaxFileSize  = "1MB"
	DefaultCacheEnabled = true
	DefaultLogLevel     = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration. Field tags use mapstructure for viper
// and json for schema validation.
type Config struct {
	Rule      RuleConfig      `json:"rule"      mapstructure:"rule"`
	Output    OutputConfig    `json:"output"    mapstructure:"output"`
	Lint      LintConfig      `json:"lint"      mapstructure:"lint"`
	Cache     CacheConfig     `json:"cache"     mapstructure:"cache"`
	Logging   LoggingConfig   `json:"logging"   mapstructure:"logging"`
	Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
}

// RuleConfig mirrors the options of the top-level constant naming rule.
type RuleConfig struct {
	Casing               string   `json:"casing"                 mapstructure:"casing"`
	Pattern              string   `json:"pattern"                mapstructure:"pattern"`
	SkipDeclarationTypes []string `json:"skip_declaration_types" mapstructure:"skip_declaration_types"`
	IncludeExported      bool     `json:"include_exported"       mapstructure:"include_exported"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Color  string `json:"color"  mapstructure:"color"`
}

// LintConfig holds file discovery and concurrency knobs.
type LintConfig struct {
	Workers     int      `json:"workers"       mapstructure:"workers"`
	MaxFileSize string   `json:"max_file_size" mapstructure:"max_file_size"`
	Exclude     []string `json:"exclude"       mapstructure:"exclude"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir"     mapstructure:"dir"`
}

// LoggingConfig controls the slog logger.
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	JSON  bool   `json:"json"  mapstructure:"json"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	OTLPEndpoint string  `json:"otlp_endpoint" mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `json:"otlp_insecure" mapstructure:"otlp_insecure"`
	OTLPHeaders  string  `json:"otlp_headers"  mapstructure:"otlp_headers"`
	SampleRatio  float64 `json:"sample_ratio"  mapstructure:"sample_ratio"`
	Environment  string  `json:"environment"   mapstructure:"environment"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Rule:    RuleConfig{Casing: DefaultCasing},
		Output:  OutputConfig{Format: DefaultFormat, Color: DefaultColor},
		Lint:    LintConfig{Workers: DefaultWorkers, MaxFileSize: DefaultMaxFileSize},
		Cache:   CacheConfig{Enabled: DefaultCacheEnabled},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Validate checks the configuration against the embedded schema and converts
// the rule section, returning every problem found.
func (c *Config) Validate() error {
	errs := validateSchema(c)

	if _, err := c.CheckOptions(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// CheckOptions converts the rule section into check options.
func (c *Config) CheckOptions() (constnaming.Options, error) {
	style, err := casing.ParseStyle(c.Rule.Casing)
	if err != nil {
		return constnaming.Options{}, fmt.Errorf("rule.casing: %w", err)
	}

	opts := constnaming.Options{
		Casing:          style,
		Pattern:         c.Rule.Pattern,
		IncludeExported: c.Rule.IncludeExported,
	}

	for _, name := range c.Rule.SkipDeclarationTypes {
		dt, parseErr := constnaming.ParseDeclarationType(name)
		if parseErr != nil {
			return constnaming.Options{}, fmt.Errorf("rule.skip_declaration_types: %w", parseErr)
		}

		opts.SkipDeclarationTypes = append(opts.SkipDeclarationTypes, dt)
	}

	if err = opts.Validate(); err != nil {
		return constnaming.Options{}, fmt.Errorf("rule: %w", err)
	}

	return opts, nil
}

// MaxFileSizeBytes parses lint.max_file_size ("1MB", "512 KiB").
func (c *Config) MaxFileSizeBytes() (int64, error) {
	size, err := humanize.ParseBytes(c.Lint.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("lint.max_file_size: %w", err)
	}

	return int64(size), nil //nolint:gosec // sizes beyond MaxInt64 are not meaningful here
}

// Observability builds the telemetry configuration for mode.
func (c *Config) Observability(mode observability.AppMode, version string) (observability.Config, error) {
	cfg := observability.DefaultConfig()
	cfg.Mode = mode
	cfg.ServiceVersion = version
	cfg.Environment = c.Telemetry.Environment
	cfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	cfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(c.Telemetry.OTLPHeaders)
	cfg.SampleRatio = c.Telemetry.SampleRatio
	cfg.LogJSON = c.Logging.JSON

	level, err := observability.ParseLevel(c.Logging.Level)
	if err != nil {
		return observability.Config{}, fmt.Errorf("logging.level: %w", err)
	}

	cfg.LogLevel = level

	return cfg, nil
}

// LogLevel returns the configured level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	level, err := observability.ParseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return level
}
