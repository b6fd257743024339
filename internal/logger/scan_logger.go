// Package logger provides scan audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/models"
)

// ScanLogger provides a dedicated audit trail for scan runs, so every
// recommendation and model refresh is reconstructable from the logs.
type ScanLogger struct {
	*logrus.Entry
}

// NewScanLogger creates a new scan audit logger
func NewScanLogger(baseLogger *logrus.Logger) *ScanLogger {
	return &ScanLogger{
		Entry: baseLogger.WithField("component", "scan"),
	}
}

// LogRecommendation logs a value bet the scan emitted
func (sl *ScanLogger) LogRecommendation(rec *models.Recommendation) {
	sl.WithFields(logrus.Fields{
		"event_id":    rec.EventID,
		"league":      rec.League,
		"market":      rec.Market,
		"outcome":     rec.Outcome,
		"bookmaker":   rec.Bookmaker,
		"price":       rec.PriceDecimal,
		"model_prob":  rec.ModelProb,
		"market_prob": rec.MarketProb,
		"edge_pct":    rec.EdgePct,
		"ev":          rec.EV,
		"stake":       rec.KellyStake,
	}).Info("Value bet recommended")
}

// LogModelRefresh logs a model retrain triggered by a stale or missing artifact
func (sl *ScanLogger) LogModelRefresh(sport models.Sport, kind string, games int, durationMs int64) {
	sl.WithFields(logrus.Fields{
		"sport":       sport,
		"model_kind":  kind,
		"games":       games,
		"duration_ms": durationMs,
	}).Info("Model retrained")
}

// LogProviderFailure logs a provider fetch failure that the scan skipped over
func (sl *ScanLogger) LogProviderFailure(provider string, sport models.Sport, err error) {
	sl.WithFields(logrus.Fields{
		"provider": provider,
		"sport":    sport,
	}).WithError(err).Warn("Provider fetch failed")
}

// LogScanSummary logs the outcome of one full scan run
func (sl *ScanLogger) LogScanSummary(started time.Time, viewsEvaluated, recommendations int) {
	sl.WithFields(logrus.Fields{
		"duration_ms":     time.Since(started).Milliseconds(),
		"views_evaluated": viewsEvaluated,
		"recommendations": recommendations,
	}).Info("Scan completed")
}
