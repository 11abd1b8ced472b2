package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".casefang"
	configType = "yaml"
	envPrefix  = "CASEFANG"
)

// Load reads configuration from the optional file at configPath, then
// environment variables with the CASEFANG_ prefix, on top of built-in
// defaults. With an empty path, .casefang.yaml is looked up in the working
// directory and then $HOME. Unknown keys are rejected.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, homeErr := os.UserHomeDir()
		if homeErr == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	err := viperCfg.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config

	err = viperCfg.UnmarshalExact(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ConfigFileUsed reports which file Load would read for configPath, or ""
// when none exists.
func ConfigFileUsed(configPath string) string {
	if configPath != "" {
		return configPath
	}

	viperCfg := viper.New()
	viperCfg.SetConfigType(configType)
	viperCfg.SetConfigName(configName)
	viperCfg.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		viperCfg.AddConfigPath(home)
	}

	if viperCfg.ReadInConfig() != nil {
		return ""
	}

	return viperCfg.ConfigFileUsed()
}

// applyDefaults registers every key so AutomaticEnv can resolve it.
func applyDefaults(viperCfg *viper.Viper) {
	defaults := Default()

	viperCfg.SetDefault("rule.casing", defaults.Rule.Casing)
	viperCfg.SetDefault("rule.pattern", "")
	viperCfg.SetDefault("rule.skip_declaration_types", []string{})
	viperCfg.SetDefault("rule.include_exported", false)

	viperCfg.SetDefault("output.format", defaults.Output.Format)
	viperCfg.SetDefault("output.color", defaults.Output.Color)

	viperCfg.SetDefault("lint.workers", defaults.Lint.Workers)
	viperCfg.SetDefault("lint.max_file_size", defaults.Lint.MaxFileSize)
	viperCfg.SetDefault("lint.exclude", []string{})

	viperCfg.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viperCfg.SetDefault("cache.dir", "")

	viperCfg.SetDefault("logging.level", defaults.Logging.Level)
	viperCfg.SetDefault("logging.json", false)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.sample_ratio", 0.0)
	viperCfg.SetDefault("telemetry.environment", "")
}
