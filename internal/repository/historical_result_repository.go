package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/oddscout/internal/database"
	"github.com/yourusername/oddscout/internal/models"
)

const upsertResultQuery = `
	INSERT INTO historical_results (event_id, sport, league, home_team, away_team,
	                                match_date, home_score, away_score,
	                                home_odds, draw_odds, away_odds)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (event_id) DO UPDATE SET
		sport = EXCLUDED.sport,
		league = EXCLUDED.league,
		home_team = EXCLUDED.home_team,
		away_team = EXCLUDED.away_team,
		match_date = EXCLUDED.match_date,
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		home_odds = EXCLUDED.home_odds,
		draw_odds = EXCLUDED.draw_odds,
		away_odds = EXCLUDED.away_odds
`

// PostgresHistoricalResultRepository implements HistoricalResultRepository
// for PostgreSQL
type PostgresHistoricalResultRepository struct {
	db *database.DB
}

// NewPostgresHistoricalResultRepository creates a new historical result repository
func NewPostgresHistoricalResultRepository(db *database.DB) HistoricalResultRepository {
	return &PostgresHistoricalResultRepository{db: db}
}

// Upsert inserts a result, replacing any prior row with the same event id
func (r *PostgresHistoricalResultRepository) Upsert(ctx context.Context, result *models.HistoricalResult) error {
	_, err := r.db.GetPool().Exec(ctx, upsertResultQuery,
		result.EventID, result.Sport, result.League, result.HomeTeam, result.AwayTeam,
		result.MatchDate, result.HomeScore, result.AwayScore,
		result.HomeOdds, result.DrawOdds, result.AwayOdds,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert historical result: %w", err)
	}
	return nil
}

// UpsertBatch upserts results in a single batch round-trip
func (r *PostgresHistoricalResultRepository) UpsertBatch(ctx context.Context, results []*models.HistoricalResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, res := range results {
		batch.Queue(upsertResultQuery,
			res.EventID, res.Sport, res.League, res.HomeTeam, res.AwayTeam,
			res.MatchDate, res.HomeScore, res.AwayScore,
			res.HomeOdds, res.DrawOdds, res.AwayOdds,
		)
	}

	br := r.db.GetPool().SendBatch(ctx, batch)
	defer br.Close()

	for range results {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert result batch: %w", err)
		}
	}
	return nil
}

// GetHistoricalResults retrieves the training corpus for a sport, optionally
// filtered by league, restricted to matches on or after the cutoff
func (r *PostgresHistoricalResultRepository) GetHistoricalResults(ctx context.Context, sport models.Sport, league string, since time.Time) ([]*models.HistoricalResult, error) {
	query := `
		SELECT event_id, sport, league, home_team, away_team, match_date,
		       home_score, away_score, home_odds, draw_odds, away_odds
		FROM historical_results
		WHERE sport = $1 AND match_date >= $2
	`
	args := []interface{}{sport, since}
	if league != "" {
		query += " AND league = $3"
		args = append(args, league)
	}
	query += " ORDER BY match_date ASC"

	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query historical results: %w", err)
	}
	defer rows.Close()

	var results []*models.HistoricalResult
	for rows.Next() {
		res := &models.HistoricalResult{}
		err := rows.Scan(
			&res.EventID, &res.Sport, &res.League, &res.HomeTeam, &res.AwayTeam,
			&res.MatchDate, &res.HomeScore, &res.AwayScore,
			&res.HomeOdds, &res.DrawOdds, &res.AwayOdds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan historical result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// Count returns the number of stored results for a sport
func (r *PostgresHistoricalResultRepository) Count(ctx context.Context, sport models.Sport) (int, error) {
	var count int
	err := r.db.GetPool().QueryRow(ctx,
		"SELECT COUNT(*) FROM historical_results WHERE sport = $1", sport,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count historical results: %w", err)
	}
	return count, nil
}
