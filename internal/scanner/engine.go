// Package scanner implements the valuation engine that joins model
// probabilities with de-vigged market prices and emits stake-sized
// recommendations.
package scanner

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/logger"
	"github.com/yourusername/oddscout/internal/metrics"
	"github.com/yourusername/oddscout/internal/modeling"
	"github.com/yourusername/oddscout/internal/models"
	"github.com/yourusername/oddscout/internal/odds"
)

// QuoteFetcher supplies raw price quotes for a sport
type QuoteFetcher interface {
	FetchAll(ctx context.Context, sport models.Sport, leagues []string) []models.PriceQuote
}

// ModelSource supplies a trained probability model per sport
type ModelSource interface {
	GetModel(ctx context.Context, sport models.Sport, league string) (modeling.Model, error)
}

// Store receives the scan's persistence side effects. Failures are logged
// and never abort an otherwise-successful scan.
type Store interface {
	SaveRecommendation(ctx context.Context, rec *models.Recommendation) error
	CacheQuotes(ctx context.Context, quotes []models.PriceQuote) error
}

// Engine orchestrates a scan across all configured sports
type Engine struct {
	cfg        *config.Config
	fetcher    QuoteFetcher
	modelSrc   ModelSource
	store      Store
	aggregator *odds.Aggregator
	devigger   *odds.Devigger
	location   *time.Location
	logger     *logrus.Logger
	audit      *logger.ScanLogger
	now        func() time.Time
}

// NewEngine creates a valuation engine. The timezone must already be
// resolved via config.Location.
func NewEngine(cfg *config.Config, fetcher QuoteFetcher, modelSrc ModelSource, store Store, location *time.Location, log *logrus.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		fetcher:    fetcher,
		modelSrc:   modelSrc,
		store:      store,
		aggregator: odds.NewAggregator(),
		devigger:   odds.NewDevigger(cfg.Devig.Method),
		location:   location,
		logger:     log,
		audit:      logger.NewScanLogger(log),
		now:        time.Now,
	}
}

// Scan fetches odds for every configured sport, values each event outcome
// and returns the accepted recommendations sorted descending by expected
// value, edge percentage breaking ties. No per-event failure is fatal; the
// scan always completes with whatever was computable.
func (e *Engine) Scan(ctx context.Context) ([]*models.Recommendation, error) {
	started := e.now()
	defer func() {
		metrics.ScanDuration.Observe(time.Since(started).Seconds())
		metrics.ScansTotal.Inc()
	}()
	metrics.ConfiguredBankroll.Set(e.cfg.Betting.Bankroll)

	now := started.In(e.location)
	minStart := now.Add(time.Duration(e.cfg.Filters.MinHoursAhead) * time.Hour)
	maxStart := now.Add(time.Duration(e.cfg.Filters.MaxHoursAhead) * time.Hour)

	var recommendations []*models.Recommendation
	viewsEvaluated := 0

	for _, sport := range []models.Sport{models.SportSoccer, models.SportBasketball, models.SportFootball} {
		leagues := e.cfg.Leagues.SportLeagues(string(sport))
		if len(leagues) == 0 {
			continue
		}

		sportLog := e.logger.WithField("sport", sport)
		sportLog.Info("Scanning sport")

		quotes := e.fetcher.FetchAll(ctx, sport, leagues)
		if len(quotes) == 0 {
			sportLog.Info("No quotes available")
			continue
		}

		if err := e.store.CacheQuotes(ctx, quotes); err != nil {
			sportLog.WithError(err).Warn("Failed to cache quotes")
		}

		model, err := e.modelSrc.GetModel(ctx, sport, "")
		if err != nil {
			sportLog.WithError(err).Warn("No model available, skipping sport")
			continue
		}

		before := len(recommendations)
		views := e.aggregator.Aggregate(quotes)
		for _, view := range views {
			if view.Event.StartTime.Before(minStart) || view.Event.StartTime.After(maxStart) {
				continue
			}
			viewsEvaluated++
			recommendations = append(recommendations, e.evaluateView(ctx, view, model)...)
		}

		metrics.RecommendationsTotal.WithLabelValues(string(sport)).Add(float64(len(recommendations) - before))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].EV != recommendations[j].EV {
			return recommendations[i].EV > recommendations[j].EV
		}
		return recommendations[i].EdgePct > recommendations[j].EdgePct
	})

	metrics.LastScanRecommendations.Set(float64(len(recommendations)))
	e.audit.LogScanSummary(started, viewsEvaluated, len(recommendations))

	return recommendations, nil
}

// evaluateView values every outcome of one market view against the model.
// Outcomes with no prediction, no price or no devig are skipped, never
// fabricated.
func (e *Engine) evaluateView(ctx context.Context, view *models.MarketView, model modeling.Model) []*models.Recommendation {
	event := view.Event

	probs, ok := model.Predict(event.HomeTeam, event.AwayTeam)
	if !ok {
		return nil
	}

	var recs []*models.Recommendation
	for _, outcome := range models.Outcomes {
		modelProb, ok := probs[outcome]
		if !ok {
			continue
		}

		bookmaker, price, ok := odds.BestPrice(view, outcome)
		if !ok {
			continue
		}

		// Fairness is judged against the specific book being bet into,
		// not a market-wide consensus.
		devigged, ok := e.devigger.Devig(view, bookmaker)
		if !ok {
			continue
		}
		marketProb, ok := devigged.FairProbs[outcome]
		if !ok {
			continue
		}

		edgePct := 0.0
		if marketProb > 0 {
			edgePct = (modelProb - marketProb) / marketProb * 100
		}
		ev := modelProb*price - 1

		if edgePct < e.cfg.Filters.MinEdgePct || ev <= e.cfg.Filters.MinEV {
			continue
		}

		stake := KellyStake(modelProb, price, e.cfg.Betting.Bankroll, e.cfg.Betting.KellyFraction, e.cfg.Betting.KellyCap)

		rec := &models.Recommendation{
			EventID:        event.EventID,
			League:         event.League,
			HomeTeam:       event.HomeTeam,
			AwayTeam:       event.AwayTeam,
			StartTimeLocal: event.StartTime.In(e.location),
			Bookmaker:      bookmaker,
			Market:         view.Market,
			Outcome:        outcome,
			PriceDecimal:   price,
			ModelProb:      modelProb,
			MarketProb:     marketProb,
			EdgePct:        edgePct,
			EV:             ev,
			KellyStake:     stake,
		}

		if err := e.store.SaveRecommendation(ctx, rec); err != nil {
			e.logger.WithError(err).WithField("event_id", rec.EventID).Warn("Failed to persist recommendation")
		}

		e.audit.LogRecommendation(rec)
		recs = append(recs, rec)
	}

	return recs
}
