package modeling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddscout/internal/models"
)

func result(home, away string, homeScore, awayScore int, day int) *models.HistoricalResult {
	date := time.Date(2025, 1, day, 15, 0, 0, 0, time.UTC)
	return &models.HistoricalResult{
		EventID:   models.GenerateEventID(home, away, date),
		Sport:     models.SportSoccer,
		League:    "soccer_epl",
		HomeTeam:  home,
		AwayTeam:  away,
		MatchDate: date,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
}

func balancedHistory() []*models.HistoricalResult {
	return []*models.HistoricalResult{
		result("arsenal", "chelsea", 2, 1, 1),
		result("chelsea", "spurs", 1, 1, 2),
		result("spurs", "arsenal", 0, 2, 3),
		result("arsenal", "spurs", 3, 1, 4),
		result("chelsea", "arsenal", 1, 2, 5),
		result("spurs", "chelsea", 2, 2, 6),
	}
}

func TestPoissonFitComputesLeagueAverages(t *testing.T) {
	m := NewPoissonModel()
	require.NoError(t, m.Fit(balancedHistory()))

	// 2+1+0+3+1+2 = 9 home goals, 1+1+2+1+2+2 = 9 away goals over 6 games
	assert.InDelta(t, 1.5, m.AvgHomeGoals, 1e-12)
	assert.InDelta(t, 1.5, m.AvgAwayGoals, 1e-12)

	// Arsenal at home: 5 goals in 2 games, 2.5 per game against a 1.5 average
	assert.InDelta(t, 2.5/1.5, m.HomeAttack["arsenal"], 1e-12)
}

func TestPoissonFitEmptyHistory(t *testing.T) {
	m := NewPoissonModel()
	assert.ErrorIs(t, m.Fit(nil), models.ErrNoHistoricalData)
}

func TestPoissonPredictSumsToOne(t *testing.T) {
	m := NewPoissonModel()
	require.NoError(t, m.Fit(balancedHistory()))

	probs, ok := m.Predict("arsenal", "chelsea")
	require.True(t, ok)

	sum := probs[models.OutcomeHome] + probs[models.OutcomeDraw] + probs[models.OutcomeAway]
	assert.InDelta(t, 1.0, sum, 1e-6)

	for outcome, p := range probs {
		assert.Greater(t, p, 0.0, "outcome %s", outcome)
		assert.Less(t, p, 1.0, "outcome %s", outcome)
	}
}

func TestPoissonPredictDeterministic(t *testing.T) {
	m := NewPoissonModel()
	require.NoError(t, m.Fit(balancedHistory()))

	first, ok := m.Predict("arsenal", "chelsea")
	require.True(t, ok)
	second, ok := m.Predict("arsenal", "chelsea")
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestPoissonPredictUnseenTeam(t *testing.T) {
	m := NewPoissonModel()
	require.NoError(t, m.Fit(balancedHistory()))

	_, ok := m.Predict("arsenal", "leeds")
	assert.False(t, ok)

	_, ok = m.Predict("leeds", "arsenal")
	assert.False(t, ok)
}

func TestPoissonPredictDegenerateFit(t *testing.T) {
	// A goalless history collapses both goal rates to zero, making the draw
	// a near-certainty and the fit unusable
	history := []*models.HistoricalResult{
		result("giants", "minnows", 0, 0, 1),
		result("minnows", "giants", 0, 0, 2),
		result("giants", "minnows", 0, 0, 3),
	}

	m := NewPoissonModel()
	require.NoError(t, m.Fit(history))

	_, ok := m.Predict("giants", "minnows")
	assert.False(t, ok)
}

func TestPoissonStrongerTeamFavored(t *testing.T) {
	history := []*models.HistoricalResult{
		result("arsenal", "chelsea", 3, 0, 1),
		result("chelsea", "arsenal", 0, 2, 2),
		result("arsenal", "spurs", 2, 1, 3),
		result("spurs", "arsenal", 1, 2, 4),
		result("chelsea", "spurs", 1, 1, 5),
		result("spurs", "chelsea", 1, 1, 6),
	}

	m := NewPoissonModel()
	require.NoError(t, m.Fit(history))

	probs, ok := m.Predict("arsenal", "chelsea")
	require.True(t, ok)
	assert.Greater(t, probs[models.OutcomeHome], probs[models.OutcomeAway])
}

func TestPoissonPMF(t *testing.T) {
	// P(X=0 | mean 1.5) = e^-1.5
	assert.InDelta(t, 0.22313016, poissonPMF(0, 1.5), 1e-8)
	// P(X=2 | mean 1.5) = 1.5^2 e^-1.5 / 2
	assert.InDelta(t, 0.25102143, poissonPMF(2, 1.5), 1e-8)
	// Zero mean collapses to a point mass at zero
	assert.Equal(t, 1.0, poissonPMF(0, 0))
	assert.Equal(t, 0.0, poissonPMF(3, 0))
}
