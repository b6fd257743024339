package modeling

import (
	"math"

	"github.com/yourusername/oddscout/internal/models"
)

const (
	// maxGoals bounds the joint scoreline grid summed during prediction
	maxGoals = 10
	// degenerateProb marks a fit as unreliable when any single outcome's
	// cumulative probability exceeds it
	degenerateProb = 0.99
)

// PoissonModel estimates match outcome probabilities from league-average
// goal rates and per-team multiplicative attack/defense strengths. Fields
// are exported for artifact serialization.
type PoissonModel struct {
	HomeAttack   map[string]float64 `json:"home_attack"`
	HomeDefense  map[string]float64 `json:"home_defense"`
	AwayAttack   map[string]float64 `json:"away_attack"`
	AwayDefense  map[string]float64 `json:"away_defense"`
	AvgHomeGoals float64            `json:"avg_home_goals"`
	AvgAwayGoals float64            `json:"avg_away_goals"`
}

// NewPoissonModel creates an unfitted goal-rate model
func NewPoissonModel() *PoissonModel {
	return &PoissonModel{
		HomeAttack:  make(map[string]float64),
		HomeDefense: make(map[string]float64),
		AwayAttack:  make(map[string]float64),
		AwayDefense: make(map[string]float64),
	}
}

// Kind returns the model family tag
func (m *PoissonModel) Kind() Kind {
	return KindPoisson
}

// Fit computes league-average home/away goal rates and four multiplicative
// strength coefficients per team, each normalized against the league
// average. Previous state is discarded.
func (m *PoissonModel) Fit(history []*models.HistoricalResult) error {
	if len(history) == 0 {
		return models.ErrNoHistoricalData
	}

	var homeGoals, awayGoals float64
	for _, r := range history {
		homeGoals += float64(r.HomeScore)
		awayGoals += float64(r.AwayScore)
	}
	n := float64(len(history))
	m.AvgHomeGoals = homeGoals / n
	m.AvgAwayGoals = awayGoals / n

	type teamTotals struct {
		homeGames, awayGames     float64
		homeScored, homeConceded float64
		awayScored, awayConceded float64
	}
	totals := make(map[string]*teamTotals)
	team := func(name string) *teamTotals {
		t, ok := totals[name]
		if !ok {
			t = &teamTotals{}
			totals[name] = t
		}
		return t
	}

	for _, r := range history {
		h := team(r.HomeTeam)
		h.homeGames++
		h.homeScored += float64(r.HomeScore)
		h.homeConceded += float64(r.AwayScore)

		a := team(r.AwayTeam)
		a.awayGames++
		a.awayScored += float64(r.AwayScore)
		a.awayConceded += float64(r.HomeScore)
	}

	m.HomeAttack = make(map[string]float64, len(totals))
	m.HomeDefense = make(map[string]float64, len(totals))
	m.AwayAttack = make(map[string]float64, len(totals))
	m.AwayDefense = make(map[string]float64, len(totals))

	for name, t := range totals {
		m.HomeAttack[name] = ratio(t.homeScored, t.homeGames, m.AvgHomeGoals)
		m.HomeDefense[name] = ratio(t.homeConceded, t.homeGames, m.AvgAwayGoals)
		m.AwayAttack[name] = ratio(t.awayScored, t.awayGames, m.AvgAwayGoals)
		m.AwayDefense[name] = ratio(t.awayConceded, t.awayGames, m.AvgHomeGoals)
	}

	return nil
}

// ratio normalizes a per-team goal mean against the league average,
// defaulting to a neutral 1.0 when the team has no games on that side or the
// league average is zero.
func ratio(goals, games, leagueAvg float64) float64 {
	if games == 0 || leagueAvg == 0 {
		return 1.0
	}
	return (goals / games) / leagueAvg
}

// Predict sums an independent bivariate Poisson joint distribution over a
// bounded goal grid into home/draw/away buckets. Returns ok=false when
// either team is unseen in training data or the fit is degenerate (one
// outcome above 0.99).
func (m *PoissonModel) Predict(homeTeam, awayTeam string) (map[models.Outcome]float64, bool) {
	homeAttack, ok := m.HomeAttack[homeTeam]
	if !ok {
		return nil, false
	}
	awayDefense, ok := m.AwayDefense[awayTeam]
	if !ok {
		return nil, false
	}
	awayAttack, ok := m.AwayAttack[awayTeam]
	if !ok {
		return nil, false
	}
	homeDefense, ok := m.HomeDefense[homeTeam]
	if !ok {
		return nil, false
	}

	homeExpected := m.AvgHomeGoals * homeAttack * awayDefense
	awayExpected := m.AvgAwayGoals * awayAttack * homeDefense

	var probHome, probDraw, probAway float64
	for h := 0; h <= maxGoals; h++ {
		ph := poissonPMF(h, homeExpected)
		for a := 0; a <= maxGoals; a++ {
			p := ph * poissonPMF(a, awayExpected)
			switch {
			case h > a:
				probHome += p
			case h == a:
				probDraw += p
			default:
				probAway += p
			}
		}
	}

	if probHome > degenerateProb || probDraw > degenerateProb || probAway > degenerateProb {
		return nil, false
	}

	return map[models.Outcome]float64{
		models.OutcomeHome: probHome,
		models.OutcomeDraw: probDraw,
		models.OutcomeAway: probAway,
	}, true
}

// poissonPMF returns P(X = k) for a Poisson distribution with the given mean
func poissonPMF(k int, mean float64) float64 {
	if mean <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0.0
	}
	logP := float64(k)*math.Log(mean) - mean - logFactorial(k)
	return math.Exp(logP)
}

func logFactorial(k int) float64 {
	sum := 0.0
	for i := 2; i <= k; i++ {
		sum += math.Log(float64(i))
	}
	return sum
}
