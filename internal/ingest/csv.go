// Package ingest imports historical match results from CSV exports into the
// Result Store.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/oddscout/internal/models"
	"github.com/yourusername/oddscout/internal/repository"
)

// batchSize bounds the number of rows upserted per database round-trip
const batchSize = 500

// dateLayouts tried in order when parsing the match date column
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02/01/06",
}

// Importer reads results.csv-style exports (football-data.co.uk column
// naming) and upserts them as HistoricalResults. Event id collisions
// overwrite, so re-running an import is harmless.
type Importer struct {
	results repository.HistoricalResultRepository
	logger  *logrus.Logger
}

// Summary reports the outcome of one import run
type Summary struct {
	Imported int
	Skipped  int
}

// NewImporter creates a CSV importer
func NewImporter(results repository.HistoricalResultRepository, logger *logrus.Logger) *Importer {
	return &Importer{results: results, logger: logger}
}

// ImportFile imports one CSV file for a sport and league. Rows with missing
// dates or scores are skipped and counted, never fatal.
func (i *Importer) ImportFile(ctx context.Context, path string, sport models.Sport, league string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	return i.importReader(ctx, f, sport, league)
}

func (i *Importer) importReader(ctx context.Context, r io.Reader, sport models.Sport, league string) (*Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := columnIndex(header)

	summary := &Summary{}
	var batch []*models.HistoricalResult

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Skipped++
			continue
		}

		result, ok := parseRow(record, cols, sport, league)
		if !ok {
			summary.Skipped++
			continue
		}

		batch = append(batch, result)
		if len(batch) >= batchSize {
			if err := i.flush(ctx, batch, summary); err != nil {
				return summary, err
			}
			batch = batch[:0]
		}
	}

	if err := i.flush(ctx, batch, summary); err != nil {
		return summary, err
	}

	i.logger.WithFields(logrus.Fields{
		"sport":    sport,
		"league":   league,
		"imported": summary.Imported,
		"skipped":  summary.Skipped,
	}).Info("CSV import complete")

	return summary, nil
}

func (i *Importer) flush(ctx context.Context, batch []*models.HistoricalResult, summary *Summary) error {
	if len(batch) == 0 {
		return nil
	}
	if err := i.results.UpsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	summary.Imported += len(batch)
	return nil
}

// columnIndex maps lowercased header names to positions
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	return cols
}

// parseRow converts one CSV record into a HistoricalResult. Closing odds
// columns are optional.
func parseRow(record []string, cols map[string]int, sport models.Sport, league string) (*models.HistoricalResult, bool) {
	date, ok := fieldDate(record, cols, "datetime", "date")
	if !ok {
		return nil, false
	}

	homeTeam, ok1 := field(record, cols, "hometeam", "team_home", "home_team")
	awayTeam, ok2 := field(record, cols, "awayteam", "team_away", "away_team")
	if !ok1 || !ok2 {
		return nil, false
	}
	homeTeam = models.NormalizeTeamName(homeTeam)
	awayTeam = models.NormalizeTeamName(awayTeam)

	homeScore, ok1 := fieldInt(record, cols, "fthg", "score_home", "home_score")
	awayScore, ok2 := fieldInt(record, cols, "ftag", "score_away", "away_score")
	if !ok1 || !ok2 {
		return nil, false
	}

	return &models.HistoricalResult{
		EventID:   models.GenerateEventID(homeTeam, awayTeam, date),
		Sport:     sport,
		League:    league,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		MatchDate: date,
		HomeScore: homeScore,
		AwayScore: awayScore,
		HomeOdds:  fieldFloat(record, cols, "b365h", "home_odds"),
		DrawOdds:  fieldFloat(record, cols, "b365d", "draw_odds"),
		AwayOdds:  fieldFloat(record, cols, "b365a", "away_odds"),
	}, true
}

func field(record []string, cols map[string]int, names ...string) (string, bool) {
	for _, name := range names {
		if idx, ok := cols[name]; ok && idx < len(record) {
			v := strings.TrimSpace(record[idx])
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func fieldInt(record []string, cols map[string]int, names ...string) (int, bool) {
	v, ok := field(record, cols, names...)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func fieldFloat(record []string, cols map[string]int, names ...string) *float64 {
	v, ok := field(record, cols, names...)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func fieldDate(record []string, cols map[string]int, names ...string) (time.Time, bool) {
	v, ok := field(record, cols, names...)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
