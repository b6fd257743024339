// Package export renders ranked recommendations to CSV files and console
// tables.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yourusername/oddscout/internal/models"
)

var csvHeader = []string{
	"event_id", "league", "start_time_local", "home_team", "away_team",
	"bookmaker", "market", "outcome", "price_decimal", "model_prob",
	"market_prob_devig", "edge_pct", "ev", "kelly_stake",
}

// WriteCSV exports recommendations in ranked order to a CSV file under the
// results directory. Writing an empty batch is a no-op.
func WriteCSV(recs []*models.Recommendation, resultsDir, filename string) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results dir: %w", err)
	}

	path := filepath.Join(resultsDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.EventID,
			rec.League,
			rec.StartTimeLocal.Format("2006-01-02 15:04"),
			rec.HomeTeam,
			rec.AwayTeam,
			rec.Bookmaker,
			string(rec.Market),
			string(rec.Outcome),
			fixed(rec.PriceDecimal, 2),
			fixed(rec.ModelProb, 4),
			fixed(rec.MarketProb, 4),
			fixed(rec.EdgePct, 2),
			fixed(rec.EV, 4),
			fixed(rec.KellyStake, 2),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}

	return path, nil
}

// fixed formats a float with a fixed number of decimal places
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// formatInt is used by the table renderer for rank columns
func formatInt(i int) string {
	return strconv.Itoa(i)
}
