// Package config provides configuration management for the Oddscout scanner.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	General  GeneralConfig  `mapstructure:"general" validate:"required"`
	Filters  FilterConfig   `mapstructure:"filters" validate:"required"`
	Betting  BettingConfig  `mapstructure:"betting" validate:"required"`
	Leagues  LeaguesConfig  `mapstructure:"leagues"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Modeling ModelingConfig `mapstructure:"modeling" validate:"required"`
	Devig    DevigConfig    `mapstructure:"devig" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// GeneralConfig represents general scanner settings
type GeneralConfig struct {
	Timezone   string `mapstructure:"timezone" validate:"required,tzname"`
	CacheDir   string `mapstructure:"cache_dir" validate:"required"`
	ResultsDir string `mapstructure:"results_dir" validate:"required"`
}

// FilterConfig represents event and value filters applied during a scan
type FilterConfig struct {
	MinHoursAhead int     `mapstructure:"min_hours_ahead" validate:"gte=0"`
	MaxHoursAhead int     `mapstructure:"max_hours_ahead" validate:"required,gt=0"`
	MinEdgePct    float64 `mapstructure:"min_edge_pct" validate:"gte=0"`
	MinEV         float64 `mapstructure:"min_ev" validate:"gte=0"`
}

// BettingConfig represents bankroll and stake sizing configuration
type BettingConfig struct {
	Bankroll      float64 `mapstructure:"bankroll" validate:"required,gt=0"`
	KellyFraction float64 `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	KellyCap      float64 `mapstructure:"kelly_cap" validate:"required,gt=0,lte=1"`
}

// LeaguesConfig lists the leagues scanned per sport. A sport with no leagues
// configured is skipped.
type LeaguesConfig struct {
	Soccer     []string `mapstructure:"soccer"`
	Basketball []string `mapstructure:"basketball"`
	Football   []string `mapstructure:"football"`
}

// ProviderConfig represents odds provider configuration
type ProviderConfig struct {
	TheOddsAPIKey          string  `mapstructure:"the_odds_api_key"`
	TheOddsAPIBaseURL      string  `mapstructure:"the_odds_api_base_url" validate:"required,url"`
	RequestTimeoutSeconds  int     `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	MaxRetries             int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond     float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RefreshIntervalSeconds int     `mapstructure:"refresh_interval_seconds" validate:"required,gt=0"`
}

// ModelingConfig represents probability model configuration
type ModelingConfig struct {
	MinHistoricalGames int `mapstructure:"min_historical_games" validate:"required,gt=0"`
	ModelCacheDays     int `mapstructure:"model_cache_days" validate:"required,gt=0"`
	HistoryMonths      int `mapstructure:"history_months" validate:"required,gt=0"`
}

// DevigConfig selects the margin removal method
type DevigConfig struct {
	Method string `mapstructure:"method" validate:"required,devigmethod"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents the periodic scan schedule
type ScheduleConfig struct {
	ScanCron string `mapstructure:"scan_cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.General.Timezone, err)
	}
	return loc, nil
}

// RequestTimeout returns the provider request timeout as a duration
func (p *ProviderConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

// CacheWindow returns the model artifact freshness window
func (m *ModelingConfig) CacheWindow() time.Duration {
	return time.Duration(m.ModelCacheDays) * 24 * time.Hour
}

// HistoryCutoff returns the oldest match date considered for training,
// relative to now
func (m *ModelingConfig) HistoryCutoff(now time.Time) time.Time {
	return now.AddDate(0, -m.HistoryMonths, 0)
}

// SportLeagues returns the configured leagues for a sport name
func (l *LeaguesConfig) SportLeagues(sport string) []string {
	switch sport {
	case "soccer":
		return l.Soccer
	case "basketball":
		return l.Basketball
	case "football":
		return l.Football
	default:
		return nil
	}
}
