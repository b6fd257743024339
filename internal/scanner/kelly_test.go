package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKellyStakeWorkedExample(t *testing.T) {
	// Even-money price with a 55% win probability: f* = 0.10, halved to
	// 0.05, so $500 of a $10,000 bankroll
	stake := KellyStake(0.55, 2.00, 10000, 0.5, 0.25)
	assert.Equal(t, 500.0, stake)
}

func TestKellyStakeNegativeEdgeFloorsAtZero(t *testing.T) {
	stake := KellyStake(0.40, 2.00, 10000, 0.5, 0.25)
	assert.Equal(t, 0.0, stake)
}

func TestKellyStakeCapsAtBankrollShare(t *testing.T) {
	// A near-certain winner at a generous price would demand most of the
	// bankroll; the cap holds it at 25%
	stake := KellyStake(0.95, 3.00, 10000, 1.0, 0.25)
	assert.Equal(t, 2500.0, stake)
}

func TestKellyStakeMonotonicInProbability(t *testing.T) {
	prev := 0.0
	for _, prob := range []float64{0.52, 0.55, 0.60, 0.65, 0.70} {
		stake := KellyStake(prob, 2.00, 10000, 0.5, 1.0)
		assert.Greater(t, stake, prev, "prob %v", prob)
		prev = stake
	}
}

func TestKellyStakeBounds(t *testing.T) {
	for _, prob := range []float64{0.01, 0.30, 0.50, 0.70, 0.99} {
		for _, price := range []float64{1.10, 1.80, 2.50, 10.0} {
			stake := KellyStake(prob, price, 10000, 0.5, 0.25)
			assert.GreaterOrEqual(t, stake, 0.0)
			assert.LessOrEqual(t, stake, 2500.0)
		}
	}
}

func TestKellyStakeDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, KellyStake(0.55, 1.00, 10000, 0.5, 0.25), "no payout at price 1.00")
	assert.Equal(t, 0.0, KellyStake(0.55, 0.50, 10000, 0.5, 0.25), "sub-even price")
	assert.Equal(t, 0.0, KellyStake(0, 2.00, 10000, 0.5, 0.25), "zero probability")
}

func TestKellyStakeRoundsToCents(t *testing.T) {
	// f* = (1*0.53 - 0.47) / 1 = 0.06, halved to 0.03 of $333.33
	stake := KellyStake(0.53, 2.00, 333.33, 0.5, 0.25)
	assert.InDelta(t, 10.0, stake, 0.01)
	assert.Equal(t, stake, float64(int(stake*100))/100)
}
