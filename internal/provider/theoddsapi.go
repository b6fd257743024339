package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/models"
)

const theOddsAPIName = "theodds_api"

// TheOddsAPI fetches head-to-head prices from the-odds-api.com and
// normalizes them into PriceQuotes.
type TheOddsAPI struct {
	apiKey  string
	baseURL string
	client  *RateLimitedHTTPClient
	logger  *logrus.Logger
	now     func() time.Time
}

// the-odds-api.com response shapes for the odds endpoint
type oddsAPIEvent struct {
	ID           string             `json:"id"`
	CommenceTime time.Time          `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []oddsAPIBookmaker `json:"bookmakers"`
}

type oddsAPIBookmaker struct {
	Key     string          `json:"key"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

type oddsAPIOutcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// NewTheOddsAPI creates a provider adapter from configuration
func NewTheOddsAPI(cfg *config.ProviderConfig, logger *logrus.Logger) *TheOddsAPI {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.RequestTimeout()
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimitPerSecond

	return &TheOddsAPI{
		apiKey:  cfg.TheOddsAPIKey,
		baseURL: strings.TrimRight(cfg.TheOddsAPIBaseURL, "/"),
		client:  NewRateLimitedHTTPClient(httpCfg, logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Name returns the provider identifier
func (p *TheOddsAPI) Name() string {
	return theOddsAPIName
}

// FetchQuotes retrieves h2h odds for each league. A failing league is logged
// and skipped; the remaining leagues still contribute quotes.
func (p *TheOddsAPI) FetchQuotes(ctx context.Context, sport models.Sport, leagues []string) ([]models.PriceQuote, error) {
	var quotes []models.PriceQuote

	for _, league := range leagues {
		leagueQuotes, err := p.fetchLeague(ctx, sport, league)
		if err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"provider": p.Name(),
				"league":   league,
			}).Warn("Failed to fetch league odds")
			continue
		}
		quotes = append(quotes, leagueQuotes...)
	}

	return quotes, nil
}

func (p *TheOddsAPI) fetchLeague(ctx context.Context, sport models.Sport, league string) ([]models.PriceQuote, error) {
	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("regions", "us,uk,eu")
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "decimal")

	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", p.baseURL, url.PathEscape(league), params.Encode())

	resp, err := p.client.Get(ctx, endpoint)
	if err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, NewProviderError(p.Name(), ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewProviderError(p.Name(), ErrCodeRateLimitExceeded, "request quota exhausted", nil)
	case resp.StatusCode >= 500:
		return nil, NewProviderError(p.Name(), ErrCodeServerError, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewProviderError(p.Name(), ErrCodeInvalidData, "failed to decode response", err)
	}

	return p.parseEvents(events, sport, league), nil
}

// parseEvents flattens the provider's nested bookmaker/market/outcome shape
// into one PriceQuote per price.
func (p *TheOddsAPI) parseEvents(events []oddsAPIEvent, sport models.Sport, league string) []models.PriceQuote {
	var quotes []models.PriceQuote
	fetchedAt := p.now()
	market := models.MarketForSport(sport)

	for _, event := range events {
		eventID := models.GenerateEventID(event.HomeTeam, event.AwayTeam, event.CommenceTime)
		homeTeam := models.NormalizeTeamName(event.HomeTeam)
		awayTeam := models.NormalizeTeamName(event.AwayTeam)

		for _, bookmaker := range event.Bookmakers {
			for _, m := range bookmaker.Markets {
				if m.Key != "h2h" {
					continue
				}
				for _, o := range m.Outcomes {
					outcome, ok := mapOutcome(o.Name, event.HomeTeam, event.AwayTeam)
					if !ok {
						continue
					}
					quotes = append(quotes, models.PriceQuote{
						Bookmaker:    bookmaker.Key,
						EventID:      eventID,
						Sport:        sport,
						League:       league,
						HomeTeam:     homeTeam,
						AwayTeam:     awayTeam,
						StartTime:    event.CommenceTime,
						Market:       market,
						Outcome:      outcome,
						PriceDecimal: o.Price,
						LastUpdated:  fetchedAt,
					})
				}
			}
		}
	}

	return quotes
}

// mapOutcome resolves a provider outcome label against the event's team
// names. Unknown labels are dropped.
func mapOutcome(name, homeTeam, awayTeam string) (models.Outcome, bool) {
	switch {
	case name == homeTeam:
		return models.OutcomeHome, true
	case name == awayTeam:
		return models.OutcomeAway, true
	case strings.EqualFold(name, "draw"):
		return models.OutcomeDraw, true
	default:
		return "", false
	}
}
