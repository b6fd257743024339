// Package metrics provides the centralized Prometheus metrics registry for
// the scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	QuotesFetchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "quotes_fetched_total",
		Help:      "Total number of price quotes fetched, by provider",
	}, []string{"provider"})
	ProviderErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "provider_errors_total",
		Help:      "Total number of provider fetch failures, by provider",
	}, []string{"provider"})
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "scans_total",
		Help:      "Total number of completed scans",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "recommendations_total",
		Help:      "Total number of value bets recommended, by sport",
	}, []string{"sport"})
	ModelRetrainsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "model_retrains_total",
		Help:      "Total number of probability model training runs",
	})
	ModelCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "oddscout",
		Name:      "model_cache_hits_total",
		Help:      "Total number of model cache hits (memory or fresh artifact)",
	})
)

// Gauge metrics
var (
	LastScanRecommendations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "oddscout",
		Name:      "last_scan_recommendations",
		Help:      "Number of recommendations produced by the most recent scan",
	})
	ConfiguredBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "oddscout",
		Name:      "configured_bankroll",
		Help:      "Bankroll used for stake sizing, in currency units",
	})
)

// Histogram metrics
var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "oddscout",
		Name:      "scan_duration_seconds",
		Help:      "Duration of full scan cycles in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
	ProviderFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "oddscout",
		Name:      "provider_fetch_duration_seconds",
		Help:      "Duration of provider fetch calls in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(QuotesFetchedTotal)
		registry.MustRegister(ProviderErrorsTotal)
		registry.MustRegister(ScansTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(ModelRetrainsTotal)
		registry.MustRegister(ModelCacheHitsTotal)

		registry.MustRegister(LastScanRecommendations)
		registry.MustRegister(ConfiguredBankroll)

		registry.MustRegister(ScanDuration)
		registry.MustRegister(ProviderFetchDuration)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
