package modeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddscout/internal/models"
)

func TestEloFitUpdatesRatings(t *testing.T) {
	m := NewEloModel()
	require.NoError(t, m.Fit([]*models.HistoricalResult{
		result("arsenal", "chelsea", 2, 0, 1),
	}))

	// Winner gains what the loser drops
	assert.Greater(t, m.Ratings["arsenal"], eloBaseline)
	assert.Less(t, m.Ratings["chelsea"], eloBaseline)
	assert.InDelta(t, 2*eloBaseline, m.Ratings["arsenal"]+m.Ratings["chelsea"], 1e-9)
}

func TestEloFitChronologicalOrder(t *testing.T) {
	// Same two results fed in either order must converge to the same
	// ratings, since Fit sorts by match date before replaying
	results := []*models.HistoricalResult{
		result("arsenal", "chelsea", 2, 0, 1),
		result("chelsea", "arsenal", 1, 0, 2),
	}
	reversed := []*models.HistoricalResult{results[1], results[0]}

	a := NewEloModel()
	require.NoError(t, a.Fit(results))
	b := NewEloModel()
	require.NoError(t, b.Fit(reversed))

	assert.InDelta(t, a.Ratings["arsenal"], b.Ratings["arsenal"], 1e-9)
	assert.InDelta(t, a.Ratings["chelsea"], b.Ratings["chelsea"], 1e-9)
}

func TestEloFitDrawSplitsPoints(t *testing.T) {
	m := NewEloModel()
	require.NoError(t, m.Fit([]*models.HistoricalResult{
		result("arsenal", "chelsea", 1, 1, 1),
	}))

	// With the home bonus the home side was expected to win, so a draw
	// still shifts rating toward the away side
	assert.Less(t, m.Ratings["arsenal"], eloBaseline)
	assert.Greater(t, m.Ratings["chelsea"], eloBaseline)
}

func TestEloFitEmptyHistory(t *testing.T) {
	m := NewEloModel()
	assert.ErrorIs(t, m.Fit(nil), models.ErrNoHistoricalData)
}

func TestEloPredictSumsToOne(t *testing.T) {
	m := NewEloModel()
	require.NoError(t, m.Fit(balancedHistory()))

	probs, ok := m.Predict("arsenal", "chelsea")
	require.True(t, ok)

	sum := probs[models.OutcomeHome] + probs[models.OutcomeDraw] + probs[models.OutcomeAway]
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEloPredictBounds(t *testing.T) {
	m := NewEloModel()
	// A lopsided rating gap must still produce probabilities inside the
	// clamp bounds
	m.Ratings["giants"] = 2400
	m.Ratings["minnows"] = 900

	probs, ok := m.Predict("giants", "minnows")
	require.True(t, ok)

	assert.GreaterOrEqual(t, probs[models.OutcomeHome], eloProbFloor)
	assert.LessOrEqual(t, probs[models.OutcomeHome], eloProbCeil)
	assert.GreaterOrEqual(t, probs[models.OutcomeAway], eloProbFloor)
	assert.LessOrEqual(t, probs[models.OutcomeAway], eloProbCeil)
}

func TestEloPredictUnseenTeamsUseBaseline(t *testing.T) {
	m := NewEloModel()
	require.NoError(t, m.Fit(balancedHistory()))

	probs, ok := m.Predict("leeds", "brighton")
	require.True(t, ok)

	// Equal baseline ratings leave only the home bonus tilting the match
	assert.Greater(t, probs[models.OutcomeHome], probs[models.OutcomeAway])
}

func TestEloLogistic(t *testing.T) {
	assert.InDelta(t, 0.5, logistic(0), 1e-12)
	// A 400-point gap is a 10:1 expected score in base-10 Elo
	assert.InDelta(t, 10.0/11.0, logistic(400), 1e-9)
	assert.InDelta(t, 1.0/11.0, logistic(-400), 1e-9)
}
