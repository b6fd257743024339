package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTeamName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Arsenal", "arsenal"},
		{"fc suffix stripped", "Arsenal FC", "arsenal"},
		{"united stripped", "Newcastle United", "newcastle"},
		{"city stripped", "Leicester City", "leicester"},
		{"manchester shortened", "Manchester United", "man"},
		{"tottenham alias", "Tottenham Hotspur", "spurs hotspur"},
		{"punctuation dropped", "St. Mirren", "st mirren"},
		{"whitespace collapsed", "  Real   Madrid  ", "real madrid"},
		{"digits kept", "Schalke 04", "schalke 04"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTeamName(tt.in))
		})
	}
}

func TestNormalizeTeamNameCollapsesBookmakerVariants(t *testing.T) {
	// The same club spelled differently by two bookmakers must normalize
	// identically, or cross-bookmaker aggregation falls apart
	assert.Equal(t, NormalizeTeamName("Arsenal"), NormalizeTeamName("Arsenal FC"))
	assert.Equal(t, NormalizeTeamName("Man United"), NormalizeTeamName("Manchester United"))
}

func TestGenerateEventID(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)

	id := GenerateEventID("Arsenal FC", "Chelsea FC", start)
	assert.Equal(t, "arsenal_chelsea_20260901", id)

	// Kickoff time within the same day does not change the id
	later := time.Date(2026, 9, 1, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, id, GenerateEventID("Arsenal", "Chelsea", later))

	// A different day does
	nextDay := start.AddDate(0, 0, 1)
	assert.NotEqual(t, id, GenerateEventID("Arsenal", "Chelsea", nextDay))
}

func TestGenerateEventIDDeterministic(t *testing.T) {
	start := time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)
	a := GenerateEventID("Tottenham Hotspur", "Manchester City", start)
	b := GenerateEventID("Tottenham Hotspur", "Manchester City", start)
	assert.Equal(t, a, b)
}

func TestMarketForSport(t *testing.T) {
	assert.Equal(t, MarketMatchWinner, MarketForSport(SportSoccer))
	assert.Equal(t, MarketMoneyline, MarketForSport(SportBasketball))
	assert.Equal(t, MarketMoneyline, MarketForSport(SportFootball))
}
