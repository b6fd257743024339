package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/oddscout/internal/database"
	"github.com/yourusername/oddscout/internal/models"
)

const upsertQuoteQuery = `
	INSERT INTO price_quotes (bookmaker, event_id, sport, league, home_team, away_team,
	                          start_time, market, outcome, price_decimal, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (bookmaker, event_id, market, outcome) DO UPDATE SET
		price_decimal = EXCLUDED.price_decimal,
		last_updated = EXCLUDED.last_updated
`

// PostgresQuoteRepository implements QuoteRepository for PostgreSQL
type PostgresQuoteRepository struct {
	db *database.DB
}

// NewPostgresQuoteRepository creates a new quote repository
func NewPostgresQuoteRepository(db *database.DB) QuoteRepository {
	return &PostgresQuoteRepository{db: db}
}

// Upsert inserts a quote, replacing any prior price for the same
// (bookmaker, event, market, outcome) key
func (r *PostgresQuoteRepository) Upsert(ctx context.Context, quote *models.PriceQuote) error {
	_, err := r.db.GetPool().Exec(ctx, upsertQuoteQuery,
		quote.Bookmaker, quote.EventID, quote.Sport, quote.League,
		quote.HomeTeam, quote.AwayTeam, quote.StartTime,
		quote.Market, quote.Outcome, quote.PriceDecimal, quote.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert quote: %w", err)
	}
	return nil
}

// UpsertBatch upserts quotes in a single batch round-trip
func (r *PostgresQuoteRepository) UpsertBatch(ctx context.Context, quotes []models.PriceQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(upsertQuoteQuery,
			q.Bookmaker, q.EventID, q.Sport, q.League,
			q.HomeTeam, q.AwayTeam, q.StartTime,
			q.Market, q.Outcome, q.PriceDecimal, q.LastUpdated,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range quotes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert quote batch: %w", err)
		}
	}
	return nil
}
