package scanner

import (
	"context"

	"github.com/yourusername/oddscout/internal/models"
	"github.com/yourusername/oddscout/internal/repository"
)

// RepositoryStore adapts the Result Store repositories to the engine's
// persistence interface.
type RepositoryStore struct {
	repos *repository.Repositories
}

// NewRepositoryStore wraps the repositories bundle
func NewRepositoryStore(repos *repository.Repositories) *RepositoryStore {
	return &RepositoryStore{repos: repos}
}

// SaveRecommendation persists one accepted value bet
func (s *RepositoryStore) SaveRecommendation(ctx context.Context, rec *models.Recommendation) error {
	return s.repos.Recommendation.Insert(ctx, rec)
}

// CacheQuotes upserts the fetched quotes with replace semantics
func (s *RepositoryStore) CacheQuotes(ctx context.Context, quotes []models.PriceQuote) error {
	return s.repos.Quote.UpsertBatch(ctx, quotes)
}
