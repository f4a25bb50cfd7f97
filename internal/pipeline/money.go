package pipeline

import "github.com/shopspring/decimal"

// round2 rounds a monetary value to 2 decimal places using banker's
// rounding, matching the rounding applied per line at enrichment time.
func round2(d decimal.Decimal) float64 {
	return d.RoundBank(2).InexactFloat64()
}

// round2f is round2 for values already held as float64, used when order
// totals are rounded once at document build time.
func round2f(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}
