package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddscout/internal/models"
)

func TestDevigMultiplicative(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("pinnacle", "e1", models.OutcomeHome, 2.00),
		quote("pinnacle", "e1", models.OutcomeDraw, 3.50),
		quote("pinnacle", "e1", models.OutcomeAway, 4.00),
	})
	require.Len(t, views, 1)

	devigged, ok := NewDevigger("multiplicative").Devig(views[0], "pinnacle")
	require.True(t, ok)

	// 1/2 + 1/3.5 + 1/4 = 1.035714...
	assert.InDelta(t, 0.5+1.0/3.5+0.25, devigged.Overround, 1e-12)
	assert.Greater(t, devigged.Overround, 1.0)

	sum := 0.0
	for _, p := range devigged.FairProbs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Multiplicative devig preserves price ordering
	assert.Greater(t, devigged.FairProbs[models.OutcomeHome], devigged.FairProbs[models.OutcomeDraw])
	assert.Greater(t, devigged.FairProbs[models.OutcomeDraw], devigged.FairProbs[models.OutcomeAway])

	assert.InDelta(t, 0.5, devigged.RawProbs[models.OutcomeHome], 1e-12)
	assert.Equal(t, "pinnacle", devigged.Bookmaker)
}

func TestDevigTwoOutcomeMarket(t *testing.T) {
	home := quote("dk", "e2", models.OutcomeHome, 1.91)
	home.Market = models.MarketMoneyline
	away := quote("dk", "e2", models.OutcomeAway, 1.91)
	away.Market = models.MarketMoneyline

	views := NewAggregator().Aggregate([]models.PriceQuote{home, away})
	require.Len(t, views, 1)

	devigged, ok := NewDevigger("multiplicative").Devig(views[0], "dk")
	require.True(t, ok)

	assert.InDelta(t, 0.5, devigged.FairProbs[models.OutcomeHome], 1e-9)
	assert.InDelta(t, 0.5, devigged.FairProbs[models.OutcomeAway], 1e-9)
}

func TestDevigUnknownBookmaker(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("pinnacle", "e1", models.OutcomeHome, 2.00),
	})

	_, ok := NewDevigger("multiplicative").Devig(views[0], "bet365")
	assert.False(t, ok)
}

func TestDevigRejectsNonPositivePrice(t *testing.T) {
	view := &models.MarketView{
		Event:      models.NormalizedEvent{EventID: "e1"},
		Market:     models.MarketMatchWinner,
		Bookmakers: []string{"pinnacle"},
		Prices: map[string]map[models.Outcome]float64{
			"pinnacle": {models.OutcomeHome: 0},
		},
	}

	_, ok := NewDevigger("multiplicative").Devig(view, "pinnacle")
	assert.False(t, ok)
}

func TestNewDeviggerUnknownMethodFallsBack(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("pinnacle", "e1", models.OutcomeHome, 2.00),
		quote("pinnacle", "e1", models.OutcomeAway, 2.00),
	})

	devigged, ok := NewDevigger("power").Devig(views[0], "pinnacle")
	require.True(t, ok)
	assert.InDelta(t, 0.5, devigged.FairProbs[models.OutcomeHome], 1e-9)
}
