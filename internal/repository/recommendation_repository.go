package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/oddscout/internal/database"
	"github.com/yourusername/oddscout/internal/models"
)

// PostgresRecommendationRepository implements RecommendationRepository for
// PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Insert persists a recommendation for audit. The row id is assigned here
// when the caller left it zero.
func (r *PostgresRecommendationRepository) Insert(ctx context.Context, rec *models.Recommendation) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO recommendations (id, event_id, league, home_team, away_team,
		                             start_time_local, bookmaker, market, outcome,
		                             price_decimal, model_prob, market_prob_devig,
		                             edge_pct, ev, kelly_stake, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.EventID, rec.League, rec.HomeTeam, rec.AwayTeam,
		rec.StartTimeLocal, rec.Bookmaker, rec.Market, rec.Outcome,
		rec.PriceDecimal, rec.ModelProb, rec.MarketProb,
		rec.EdgePct, rec.EV, rec.KellyStake, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// GetByDateRange retrieves recommendations created within a time range,
// newest first
func (r *PostgresRecommendationRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Recommendation, error) {
	query := `
		SELECT id, event_id, league, home_team, away_team, start_time_local,
		       bookmaker, market, outcome, price_decimal, model_prob,
		       market_prob_devig, edge_pct, ev, kelly_stake, created_at
		FROM recommendations
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec := &models.Recommendation{}
		err := rows.Scan(
			&rec.ID, &rec.EventID, &rec.League, &rec.HomeTeam, &rec.AwayTeam,
			&rec.StartTimeLocal, &rec.Bookmaker, &rec.Market, &rec.Outcome,
			&rec.PriceDecimal, &rec.ModelProb, &rec.MarketProb,
			&rec.EdgePct, &rec.EV, &rec.KellyStake, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}
