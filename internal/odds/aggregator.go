// Package odds implements cross-bookmaker price aggregation and margin
// removal.
package odds

import (
	"time"

	"github.com/yourusername/oddscout/internal/models"
)

// Aggregator merges raw per-bookmaker price quotes into one market view per
// (event, market) pair.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// Aggregate groups quotes by event id, then market kind, then bookmaker and
// outcome. The first quote seen for an event id defines the canonical event;
// later quotes for the same id are assumed to describe the same fixture. A
// later quote for the same (bookmaker, event, market, outcome) replaces the
// earlier price. Views are timestamped at aggregation time.
func (a *Aggregator) Aggregate(quotes []models.PriceQuote) []*models.MarketView {
	type viewKey struct {
		eventID string
		market  models.Market
	}

	events := make(map[string]models.NormalizedEvent)
	views := make(map[viewKey]*models.MarketView)
	var order []viewKey
	aggregatedAt := a.now()

	for _, q := range quotes {
		if _, seen := events[q.EventID]; !seen {
			events[q.EventID] = models.NormalizedEvent{
				EventID:   q.EventID,
				Sport:     q.Sport,
				League:    q.League,
				HomeTeam:  q.HomeTeam,
				AwayTeam:  q.AwayTeam,
				StartTime: q.StartTime,
			}
		}

		key := viewKey{eventID: q.EventID, market: q.Market}
		view, ok := views[key]
		if !ok {
			view = &models.MarketView{
				Event:       events[q.EventID],
				Market:      q.Market,
				Prices:      make(map[string]map[models.Outcome]float64),
				LastUpdated: aggregatedAt,
			}
			views[key] = view
			order = append(order, key)
		}

		prices, ok := view.Prices[q.Bookmaker]
		if !ok {
			prices = make(map[models.Outcome]float64)
			view.Prices[q.Bookmaker] = prices
			view.Bookmakers = append(view.Bookmakers, q.Bookmaker)
		}
		prices[q.Outcome] = q.PriceDecimal
	}

	result := make([]*models.MarketView, 0, len(order))
	for _, key := range order {
		result = append(result, views[key])
	}
	return result
}

// BestPrice scans all bookmakers offering an outcome in the view and returns
// the bookmaker with the maximum decimal price. Ties go to the first
// bookmaker encountered; tied prices are economically equivalent. Returns
// ok=false when no bookmaker offers the outcome.
func BestPrice(view *models.MarketView, outcome models.Outcome) (bookmaker string, price float64, ok bool) {
	for _, b := range view.Bookmakers {
		p, offered := view.Prices[b][outcome]
		if !offered {
			continue
		}
		if !ok || p > price {
			bookmaker, price, ok = b, p, true
		}
	}
	return bookmaker, price, ok
}
