package odds

import (
	"github.com/yourusername/oddscout/internal/models"
)

// Method selects the margin removal algorithm
type Method string

const (
	// MethodMultiplicative divides each raw implied probability by the
	// overround. Only method required for parity; additive and power-based
	// removal plug in behind the same contract.
	MethodMultiplicative Method = "multiplicative"
)

// Devigger converts raw bookmaker prices into vig-free outcome probabilities
type Devigger struct {
	method Method
}

// NewDevigger creates a devigger for the configured method. Unknown methods
// fall back to multiplicative.
func NewDevigger(method string) *Devigger {
	m := Method(method)
	if m != MethodMultiplicative {
		m = MethodMultiplicative
	}
	return &Devigger{method: m}
}

// Devig computes vig-free probabilities for one bookmaker's prices in a
// market view. Raw implied probability per outcome is 1/price; the overround
// is their sum. Returns ok=false when the bookmaker has no quotes in the
// view or the overround is not positive. Fair probabilities sum to 1 up to
// floating-point error whenever ok.
func (d *Devigger) Devig(view *models.MarketView, bookmaker string) (*models.DeviggedMarket, bool) {
	prices, ok := view.BookmakerPrices(bookmaker)
	if !ok || len(prices) == 0 {
		return nil, false
	}

	rawProbs := make(map[models.Outcome]float64, len(prices))
	overround := 0.0
	for outcome, price := range prices {
		if price <= 0 {
			return nil, false
		}
		p := 1.0 / price
		rawProbs[outcome] = p
		overround += p
	}
	if overround <= 0 {
		return nil, false
	}

	fairProbs := make(map[models.Outcome]float64, len(rawProbs))
	switch d.method {
	case MethodMultiplicative:
		for outcome, p := range rawProbs {
			fairProbs[outcome] = p / overround
		}
	}

	return &models.DeviggedMarket{
		EventID:   view.Event.EventID,
		Bookmaker: bookmaker,
		Market:    view.Market,
		RawProbs:  rawProbs,
		FairProbs: fairProbs,
		Overround: overround,
	}, true
}
