package scanner

import "github.com/shopspring/decimal"

// KellyStake sizes a stake with the fractional Kelly criterion. The raw
// Kelly fraction f* = (b·p − (1−p)) / b with b = price − 1 is scaled by the
// configured fraction, capped at the configured maximum share of bankroll,
// floored at zero, and the resulting stake rounded to currency precision.
// Fractional Kelly trades growth rate for variance; full Kelly overbets
// badly when the model probability is off.
func KellyStake(prob, price, bankroll, fraction, cap float64) float64 {
	b := price - 1.0
	if b <= 0 || prob <= 0 {
		return 0
	}

	kelly := (b*prob - (1 - prob)) / b
	kelly *= fraction
	if kelly > cap {
		kelly = cap
	}
	if kelly < 0 {
		kelly = 0
	}

	stake := decimal.NewFromFloat(bankroll).Mul(decimal.NewFromFloat(kelly))
	return stake.Round(2).InexactFloat64()
}
