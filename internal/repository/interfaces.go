// Package repository implements the Result Store over PostgreSQL.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/oddscout/internal/models"
)

// QuoteRepository defines the interface for raw price quote caching.
// Upserts replace by (bookmaker, event, market, outcome).
type QuoteRepository interface {
	Upsert(ctx context.Context, quote *models.PriceQuote) error
	UpsertBatch(ctx context.Context, quotes []models.PriceQuote) error
}

// HistoricalResultRepository defines the interface for the training corpus.
// Upserts replace by event id so re-imports are harmless.
type HistoricalResultRepository interface {
	Upsert(ctx context.Context, result *models.HistoricalResult) error
	UpsertBatch(ctx context.Context, results []*models.HistoricalResult) error
	GetHistoricalResults(ctx context.Context, sport models.Sport, league string, since time.Time) ([]*models.HistoricalResult, error)
	Count(ctx context.Context, sport models.Sport) (int, error)
}

// RecommendationRepository defines the interface for persisting value bets
type RecommendationRepository interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Recommendation, error)
}
