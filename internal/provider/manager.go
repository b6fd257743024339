package provider

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/logger"
	"github.com/yourusername/oddscout/internal/metrics"
	"github.com/yourusername/oddscout/internal/models"
)

// Manager fans a fetch out across all registered providers. Each provider
// runs in its own goroutine and its outcome is captured as a result, so one
// failing provider contributes zero quotes without aborting the others.
type Manager struct {
	providers []Provider
	logger    *logrus.Logger
	audit     *logger.ScanLogger
}

// fetchResult captures one provider's outcome, success or failure
type fetchResult struct {
	provider string
	quotes   []models.PriceQuote
	err      error
}

// NewManager creates a provider manager
func NewManager(log *logrus.Logger, providers ...Provider) *Manager {
	return &Manager{providers: providers, logger: log, audit: logger.NewScanLogger(log)}
}

// FetchAll fetches quotes from every provider concurrently and merges the
// successful results. Provider failures are logged and counted, never
// propagated.
func (m *Manager) FetchAll(ctx context.Context, sport models.Sport, leagues []string) []models.PriceQuote {
	results := make(chan fetchResult, len(m.providers))

	var wg sync.WaitGroup
	for _, p := range m.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			started := time.Now()
			quotes, err := p.FetchQuotes(ctx, sport, leagues)
			metrics.ProviderFetchDuration.WithLabelValues(p.Name()).Observe(time.Since(started).Seconds())
			results <- fetchResult{provider: p.Name(), quotes: quotes, err: err}
		}(p)
	}
	wg.Wait()
	close(results)

	var merged []models.PriceQuote
	for r := range results {
		if r.err != nil {
			metrics.ProviderErrorsTotal.WithLabelValues(r.provider).Inc()
			m.audit.LogProviderFailure(r.provider, sport, r.err)
			continue
		}
		metrics.QuotesFetchedTotal.WithLabelValues(r.provider).Add(float64(len(r.quotes)))
		merged = append(merged, r.quotes...)
	}

	return merged
}
