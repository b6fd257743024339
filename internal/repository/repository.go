package repository

import (
	"fmt"

	"github.com/yourusername/oddscout/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Quote            QuoteRepository
	HistoricalResult HistoricalResultRepository
	Recommendation   RecommendationRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Quote:            NewPostgresQuoteRepository(db),
		HistoricalResult: NewPostgresHistoricalResultRepository(db),
		Recommendation:   NewPostgresRecommendationRepository(db),
	}, nil
}
