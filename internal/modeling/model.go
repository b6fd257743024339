// Package modeling implements per-sport outcome probability models and the
// selector that trains and caches them.
package modeling

import (
	"fmt"

	"github.com/yourusername/oddscout/internal/models"
)

// Kind is the tagged variant identifying a model family. Adding a family
// means adding a variant arm to NewModel, not a conditional chain.
type Kind string

const (
	KindPoisson Kind = "poisson"
	KindElo     Kind = "elo"
)

// Model estimates a probability distribution over match outcomes. Fit
// replaces internal state wholesale and never mutates the input history.
// Predict returns ok=false when no reliable estimate exists for the pairing.
type Model interface {
	Kind() Kind
	Fit(history []*models.HistoricalResult) error
	Predict(homeTeam, awayTeam string) (map[models.Outcome]float64, bool)
}

// NewModel constructs an unfitted model of the given kind
func NewModel(kind Kind) (Model, error) {
	switch kind {
	case KindPoisson:
		return NewPoissonModel(), nil
	case KindElo:
		return NewEloModel(), nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", kind)
	}
}

// SelectKind chooses a model family from training data volume. Both arms
// currently resolve to the goal-rate model; the split point is kept so an
// alternate family can slot in for data-rich leagues.
func SelectKind(historicalGames, minGames int) Kind {
	if historicalGames < minGames {
		return KindPoisson
	}
	return KindPoisson
}
