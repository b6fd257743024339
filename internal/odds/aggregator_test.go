package odds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddscout/internal/models"
)

func quote(bookmaker, eventID string, outcome models.Outcome, price float64) models.PriceQuote {
	return models.PriceQuote{
		Bookmaker:    bookmaker,
		EventID:      eventID,
		Sport:        models.SportSoccer,
		League:       "soccer_epl",
		HomeTeam:     "arsenal",
		AwayTeam:     "chelsea",
		StartTime:    time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
		Market:       models.MarketMatchWinner,
		Outcome:      outcome,
		PriceDecimal: price,
	}
}

func TestAggregateGroupsByEventAndBookmaker(t *testing.T) {
	quotes := []models.PriceQuote{
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeHome, 2.10),
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeDraw, 3.40),
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeAway, 3.80),
		quote("bet365", "arsenal_chelsea_20260901", models.OutcomeHome, 2.05),
		quote("bet365", "spurs_everton_20260901", models.OutcomeHome, 1.70),
	}

	views := NewAggregator().Aggregate(quotes)
	require.Len(t, views, 2)

	first := views[0]
	assert.Equal(t, "arsenal_chelsea_20260901", first.Event.EventID)
	assert.Equal(t, models.MarketMatchWinner, first.Market)
	assert.Equal(t, []string{"pinnacle", "bet365"}, first.Bookmakers)

	prices, ok := first.BookmakerPrices("pinnacle")
	require.True(t, ok)
	assert.Equal(t, 2.10, prices[models.OutcomeHome])
	assert.Equal(t, 3.40, prices[models.OutcomeDraw])
	assert.Equal(t, 3.80, prices[models.OutcomeAway])

	assert.Equal(t, "spurs_everton_20260901", views[1].Event.EventID)
}

func TestAggregateLaterQuoteReplacesEarlier(t *testing.T) {
	quotes := []models.PriceQuote{
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeHome, 2.10),
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeHome, 2.25),
	}

	views := NewAggregator().Aggregate(quotes)
	require.Len(t, views, 1)

	prices, _ := views[0].BookmakerPrices("pinnacle")
	assert.Equal(t, 2.25, prices[models.OutcomeHome])
	assert.Equal(t, []string{"pinnacle"}, views[0].Bookmakers)
}

func TestAggregateFirstQuoteDefinesEvent(t *testing.T) {
	second := quote("bet365", "arsenal_chelsea_20260901", models.OutcomeHome, 2.05)
	second.HomeTeam = "arsenal fc"

	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("pinnacle", "arsenal_chelsea_20260901", models.OutcomeHome, 2.10),
		second,
	})

	require.Len(t, views, 1)
	assert.Equal(t, "arsenal", views[0].Event.HomeTeam)
}

func TestAggregateEmptyInput(t *testing.T) {
	views := NewAggregator().Aggregate(nil)
	assert.Empty(t, views)
}

func TestBestPricePicksMaximum(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("alpha", "e1", models.OutcomeHome, 2.10),
		quote("bravo", "e1", models.OutcomeHome, 1.95),
		quote("charlie", "e1", models.OutcomeHome, 2.30),
	})
	require.Len(t, views, 1)

	bookmaker, price, ok := BestPrice(views[0], models.OutcomeHome)
	require.True(t, ok)
	assert.Equal(t, "charlie", bookmaker)
	assert.Equal(t, 2.30, price)
}

func TestBestPriceTieGoesToFirstSeen(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("alpha", "e1", models.OutcomeHome, 2.10),
		quote("bravo", "e1", models.OutcomeHome, 1.95),
		quote("charlie", "e1", models.OutcomeHome, 2.10),
	})
	require.Len(t, views, 1)

	bookmaker, price, ok := BestPrice(views[0], models.OutcomeHome)
	require.True(t, ok)
	assert.Equal(t, "alpha", bookmaker)
	assert.Equal(t, 2.10, price)
}

func TestBestPriceMissingOutcome(t *testing.T) {
	views := NewAggregator().Aggregate([]models.PriceQuote{
		quote("alpha", "e1", models.OutcomeHome, 2.10),
	})
	require.Len(t, views, 1)

	_, _, ok := BestPrice(views[0], models.OutcomeDraw)
	assert.False(t, ok)
}
