// Package config provides configuration management for the Oddscout scanner.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration, falling back to defaults and
// environment variables when the file is absent.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ODDSCOUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "oddscout")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("general.timezone", "America/New_York")
	v.SetDefault("general.cache_dir", "data/cache")
	v.SetDefault("general.results_dir", "data/results")

	v.SetDefault("filters.min_hours_ahead", 24)
	v.SetDefault("filters.max_hours_ahead", 48)
	v.SetDefault("filters.min_edge_pct", 4.0)
	v.SetDefault("filters.min_ev", 0.0)

	v.SetDefault("betting.bankroll", 10000.0)
	v.SetDefault("betting.kelly_fraction", 0.5)
	v.SetDefault("betting.kelly_cap", 0.25)

	v.SetDefault("provider.the_odds_api_base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("provider.request_timeout_seconds", 10)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.rate_limit_per_second", 5.0)
	v.SetDefault("provider.refresh_interval_seconds", 300)

	v.SetDefault("modeling.min_historical_games", 100)
	v.SetDefault("modeling.model_cache_days", 7)
	v.SetDefault("modeling.history_months", 24)

	v.SetDefault("devig.method", "multiplicative")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("schedule.scan_cron", "@every 1h")
}
