package modeling

import (
	"math"
	"sort"

	"github.com/yourusername/oddscout/internal/models"
)

const (
	eloBaseline     = 1500.0
	eloKFactor      = 32.0
	eloHomeBonus    = 100.0
	eloScale        = 400.0
	eloDrawConstant = 0.25
	eloHomeShare    = 1.1
	eloProbFloor    = 0.01
	eloProbCeil     = 0.98
)

// EloModel estimates match outcome probabilities from a single rating scalar
// per team, updated sequentially over chronological results. Ratings are
// exported for artifact serialization.
type EloModel struct {
	Ratings map[string]float64 `json:"ratings"`
}

// NewEloModel creates an unfitted rating model
func NewEloModel() *EloModel {
	return &EloModel{Ratings: make(map[string]float64)}
}

// Kind returns the model family tag
func (m *EloModel) Kind() Kind {
	return KindElo
}

// Fit initializes every team at the baseline rating and replays results in
// chronological order, updating ratings with a logistic expected-score
// function. Draws count as a half-point for both teams. Previous state is
// discarded; the input slice is not modified.
func (m *EloModel) Fit(history []*models.HistoricalResult) error {
	if len(history) == 0 {
		return models.ErrNoHistoricalData
	}

	ordered := make([]*models.HistoricalResult, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MatchDate.Before(ordered[j].MatchDate)
	})

	m.Ratings = make(map[string]float64)
	for _, r := range ordered {
		if _, ok := m.Ratings[r.HomeTeam]; !ok {
			m.Ratings[r.HomeTeam] = eloBaseline
		}
		if _, ok := m.Ratings[r.AwayTeam]; !ok {
			m.Ratings[r.AwayTeam] = eloBaseline
		}

		var result float64
		switch {
		case r.HomeScore > r.AwayScore:
			result = 1.0
		case r.HomeScore < r.AwayScore:
			result = 0.0
		default:
			result = 0.5
		}

		ratingDiff := m.Ratings[r.HomeTeam] - m.Ratings[r.AwayTeam] + eloHomeBonus
		expected := logistic(ratingDiff)

		m.Ratings[r.HomeTeam] += eloKFactor * (result - expected)
		m.Ratings[r.AwayTeam] += eloKFactor * ((1 - result) - (1 - expected))
	}

	return nil
}

// Predict converts the rating gap plus home bonus into a win-or-draw
// probability, splits out a fixed draw share, clamps each outcome away from
// degenerate certainty and renormalizes so the three outcomes sum to 1.
// Unseen teams predict from the baseline rating.
func (m *EloModel) Predict(homeTeam, awayTeam string) (map[models.Outcome]float64, bool) {
	homeRating := m.rating(homeTeam)
	awayRating := m.rating(awayTeam)

	probHomeOrDraw := logistic(homeRating - awayRating + eloHomeBonus)
	probDraw := eloDrawConstant
	probHome := (probHomeOrDraw - probDraw/2) * eloHomeShare
	probAway := 1 - probHome - probDraw

	probHome = clamp(probHome, eloProbFloor, eloProbCeil)
	probAway = clamp(probAway, eloProbFloor, eloProbCeil)
	probDraw = 1 - probHome - probAway

	return map[models.Outcome]float64{
		models.OutcomeHome: probHome,
		models.OutcomeDraw: probDraw,
		models.OutcomeAway: probAway,
	}, true
}

func (m *EloModel) rating(team string) float64 {
	if r, ok := m.Ratings[team]; ok {
		return r
	}
	return eloBaseline
}

// logistic is the base-10 Elo expected-score function
func logistic(ratingDiff float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -ratingDiff/eloScale))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
