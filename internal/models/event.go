package models

import (
	"strings"
	"time"
	"unicode"
)

// replacements applied during team name normalization, in order. Longer
// bookmaker-specific aliases must come before generic word strips.
var teamNameReplacements = []struct{ old, new string }{
	{" fc", ""},
	{" afc", ""},
	{" united", ""},
	{" city", ""},
	{"manchester", "man"},
	{"tottenham", "spurs"},
}

// NormalizeTeamName collapses bookmaker-specific spellings of a team name
// onto a canonical form: lowercase, common suffixes stripped, alphanumeric
// characters and single spaces only.
func NormalizeTeamName(name string) string {
	normalized := strings.ToLower(name)

	for _, r := range teamNameReplacements {
		normalized = strings.ReplaceAll(normalized, r.old, r.new)
	}

	var b strings.Builder
	for _, c := range normalized {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// GenerateEventID derives a deterministic event identifier from normalized
// team names and the start date, so independent observations of the same
// fixture collide onto one id. Two fixtures between the same teams on the
// same calendar day would also collide; accepted as a known limitation.
func GenerateEventID(homeTeam, awayTeam string, startTime time.Time) string {
	home := NormalizeTeamName(homeTeam)
	away := NormalizeTeamName(awayTeam)
	return home + "_" + away + "_" + startTime.Format("20060102")
}
