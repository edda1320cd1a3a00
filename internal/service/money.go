package service

import "github.com/shopspring/decimal"

// Money aggregation runs on decimals so repeated float sums cannot drift:
// cost 2.50 × quantity 3 must come out as exactly 7.50.

func itemValue(cost, quantity float64) decimal.Decimal {
	return decimal.NewFromFloat(cost).Mul(decimal.NewFromFloat(quantity))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
