package modeling

import (
	"context"
	"errors"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/logger"
	"github.com/yourusername/oddscout/internal/metrics"
	"github.com/yourusername/oddscout/internal/models"
)

// HistorySource supplies historical results for model training
type HistorySource interface {
	GetHistoricalResults(ctx context.Context, sport models.Sport, league string, since time.Time) ([]*models.HistoricalResult, error)
}

// Selector trains, caches and serves one probability model per sport. The
// persisted artifact is the only mutable shared state touched by modeling;
// it is written at most once per cache miss. Callers running concurrent
// scans must serialize retraining per sport.
type Selector struct {
	artifacts ArtifactStore
	history   HistorySource
	memory    *cache.Cache
	cfg       *config.ModelingConfig
	logger    *logrus.Logger
	audit     *logger.ScanLogger
	now       func() time.Time
}

// NewSelector creates a model selector
func NewSelector(artifacts ArtifactStore, history HistorySource, cfg *config.ModelingConfig, log *logrus.Logger) *Selector {
	window := cfg.CacheWindow()
	return &Selector{
		artifacts: artifacts,
		history:   history,
		memory:    cache.New(window, window*2),
		cfg:       cfg,
		logger:    log,
		audit:     logger.NewScanLogger(log),
		now:       time.Now,
	}
}

// GetModel returns the sport's probability model, training and persisting a
// fresh one when no artifact exists or the cached artifact has aged past the
// freshness window. League, when non-empty, scopes the training data; the
// artifact stays keyed by sport.
func (s *Selector) GetModel(ctx context.Context, sport models.Sport, league string) (Model, error) {
	if cached, found := s.memory.Get(string(sport)); found {
		if model, ok := cached.(Model); ok {
			metrics.ModelCacheHitsTotal.Inc()
			return model, nil
		}
	}

	model, modTime, err := s.artifacts.Load(sport)
	if err == nil && s.now().Sub(modTime) < s.cfg.CacheWindow() {
		metrics.ModelCacheHitsTotal.Inc()
		s.memory.SetDefault(string(sport), model)
		return model, nil
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.logger.WithError(err).WithField("sport", sport).Warn("Failed to load model artifact, retraining")
	}

	return s.train(ctx, sport, league)
}

func (s *Selector) train(ctx context.Context, sport models.Sport, league string) (Model, error) {
	started := s.now()
	since := s.cfg.HistoryCutoff(started)
	history, err := s.history.GetHistoricalResults(ctx, sport, league, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical results for %s: %w", sport, err)
	}

	kind := SelectKind(len(history), s.cfg.MinHistoricalGames)
	model, err := NewModel(kind)
	if err != nil {
		return nil, err
	}

	if len(history) > 0 {
		if err := model.Fit(history); err != nil {
			return nil, fmt.Errorf("failed to fit %s model for %s: %w", kind, sport, err)
		}
	}
	metrics.ModelRetrainsTotal.Inc()

	if err := s.artifacts.Store(sport, model); err != nil {
		// A failed artifact write costs a retrain next run, not correctness
		s.logger.WithError(err).WithField("sport", sport).Warn("Failed to persist model artifact")
	}
	s.memory.SetDefault(string(sport), model)

	s.audit.LogModelRefresh(sport, string(kind), len(history), s.now().Sub(started).Milliseconds())

	return model, nil
}
