// Package database wraps the PostgreSQL connection pool.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourusername/oddscout/internal/config"
)

// DB wraps the pgxpool.Pool to provide database operations
type DB struct {
	pool *pgxpool.Pool
}

// NewDB creates a new database connection pool from configuration
func NewDB(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close gracefully closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetPool returns the underlying connection pool
func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

// Initialize creates a connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ensureSchema creates the scanner's tables when they do not exist yet
func (db *DB) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS price_quotes (
			bookmaker TEXT NOT NULL,
			event_id TEXT NOT NULL,
			sport TEXT NOT NULL,
			league TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			market TEXT NOT NULL,
			outcome TEXT NOT NULL,
			price_decimal DOUBLE PRECISION NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (bookmaker, event_id, market, outcome)
		)`,
		`CREATE TABLE IF NOT EXISTS historical_results (
			event_id TEXT PRIMARY KEY,
			sport TEXT NOT NULL,
			league TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			match_date TIMESTAMPTZ NOT NULL,
			home_score INTEGER NOT NULL,
			away_score INTEGER NOT NULL,
			home_odds DOUBLE PRECISION,
			draw_odds DOUBLE PRECISION,
			away_odds DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_historical_results_sport_league
			ON historical_results (sport, league, match_date)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id UUID PRIMARY KEY,
			event_id TEXT NOT NULL,
			league TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			start_time_local TIMESTAMPTZ NOT NULL,
			bookmaker TEXT NOT NULL,
			market TEXT NOT NULL,
			outcome TEXT NOT NULL,
			price_decimal DOUBLE PRECISION NOT NULL,
			model_prob DOUBLE PRECISION NOT NULL,
			market_prob_devig DOUBLE PRECISION NOT NULL,
			edge_pct DOUBLE PRECISION NOT NULL,
			ev DOUBLE PRECISION NOT NULL,
			kelly_stake DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
