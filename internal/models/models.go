package models

import (
	"time"

	"github.com/google/uuid"
)

// Sport identifies a supported sport
type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
)

// Market represents the kind of betting market
type Market string

const (
	MarketMatchWinner Market = "match_winner"
	MarketMoneyline   Market = "moneyline"
)

// Outcome represents a match outcome within a market
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// Outcomes lists all outcomes in evaluation order
var Outcomes = []Outcome{OutcomeHome, OutcomeDraw, OutcomeAway}

// MarketForSport returns the market kind offered for a sport's head-to-head prices
func MarketForSport(sport Sport) Market {
	if sport == SportSoccer {
		return MarketMatchWinner
	}
	return MarketMoneyline
}

// PriceQuote is a single bookmaker price observation. Immutable once created.
// A later quote for the same (bookmaker, event, market, outcome) supersedes
// the earlier one.
type PriceQuote struct {
	Bookmaker    string    `db:"bookmaker" json:"bookmaker" validate:"required"`
	EventID      string    `db:"event_id" json:"event_id" validate:"required"`
	Sport        Sport     `db:"sport" json:"sport" validate:"required"`
	League       string    `db:"league" json:"league" validate:"required"`
	HomeTeam     string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam     string    `db:"away_team" json:"away_team" validate:"required"`
	StartTime    time.Time `db:"start_time" json:"start_time" validate:"required"`
	Market       Market    `db:"market" json:"market" validate:"required"`
	Outcome      Outcome   `db:"outcome" json:"outcome" validate:"required"`
	PriceDecimal float64   `db:"price_decimal" json:"price_decimal" validate:"required,gt=1"`
	LastUpdated  time.Time `db:"last_updated" json:"last_updated"`
}

// NormalizedEvent identifies a real-world fixture independently of which
// bookmaker reported it. The event id collapses independent observations of
// the same match onto a single identifier.
type NormalizedEvent struct {
	EventID   string    `json:"event_id"`
	Sport     Sport     `json:"sport"`
	League    string    `json:"league"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
}

// MarketView is an aggregated cross-bookmaker price snapshot for one event
// and market kind. Bookmakers preserves insertion order so best-price
// tie-breaks are stable.
type MarketView struct {
	Event       NormalizedEvent                `json:"event"`
	Market      Market                         `json:"market"`
	Bookmakers  []string                       `json:"bookmakers"`
	Prices      map[string]map[Outcome]float64 `json:"prices"`
	LastUpdated time.Time                      `json:"last_updated"`
}

// BookmakerPrices returns the outcome prices offered by one bookmaker
func (v *MarketView) BookmakerPrices(bookmaker string) (map[Outcome]float64, bool) {
	prices, ok := v.Prices[bookmaker]
	return prices, ok
}

// DeviggedMarket holds one bookmaker's implied probabilities with the margin
// removed. Derived from a MarketView, never persisted independently.
type DeviggedMarket struct {
	EventID   string              `json:"event_id"`
	Bookmaker string              `json:"bookmaker"`
	Market    Market              `json:"market"`
	RawProbs  map[Outcome]float64 `json:"raw_probs"`
	FairProbs map[Outcome]float64 `json:"fair_probs"`
	Overround float64             `json:"overround"`
}

// Recommendation is an accepted value bet. Immutable once emitted and
// persisted for audit.
type Recommendation struct {
	ID             uuid.UUID `db:"id" json:"id"`
	EventID        string    `db:"event_id" json:"event_id"`
	League         string    `db:"league" json:"league"`
	HomeTeam       string    `db:"home_team" json:"home_team"`
	AwayTeam       string    `db:"away_team" json:"away_team"`
	StartTimeLocal time.Time `db:"start_time_local" json:"start_time_local"`
	Bookmaker      string    `db:"bookmaker" json:"bookmaker"`
	Market         Market    `db:"market" json:"market"`
	Outcome        Outcome   `db:"outcome" json:"outcome"`
	PriceDecimal   float64   `db:"price_decimal" json:"price_decimal"`
	ModelProb      float64   `db:"model_prob" json:"model_prob"`
	MarketProb     float64   `db:"market_prob_devig" json:"market_prob_devig"`
	EdgePct        float64   `db:"edge_pct" json:"edge_pct"`
	EV             float64   `db:"ev" json:"ev"`
	KellyStake     float64   `db:"kelly_stake" json:"kelly_stake"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// HistoricalResult is a settled match used as training data. Event id
// collisions overwrite so re-imports are harmless.
type HistoricalResult struct {
	EventID   string    `db:"event_id" json:"event_id" validate:"required"`
	Sport     Sport     `db:"sport" json:"sport" validate:"required"`
	League    string    `db:"league" json:"league" validate:"required"`
	HomeTeam  string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam  string    `db:"away_team" json:"away_team" validate:"required"`
	MatchDate time.Time `db:"match_date" json:"match_date" validate:"required"`
	HomeScore int       `db:"home_score" json:"home_score" validate:"gte=0"`
	AwayScore int       `db:"away_score" json:"away_score" validate:"gte=0"`
	HomeOdds  *float64  `db:"home_odds" json:"home_odds,omitempty"`
	DrawOdds  *float64  `db:"draw_odds" json:"draw_odds,omitempty"`
	AwayOdds  *float64  `db:"away_odds" json:"away_odds,omitempty"`
}
