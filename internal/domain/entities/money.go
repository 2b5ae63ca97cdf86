package entities

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MoneyPlaces is the number of decimal places kept for stored amounts.
const MoneyPlaces = 2

// Percentage returns base × pct / 100 rounded to cents.
func Percentage(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred).Round(MoneyPlaces)
}

// Money rounds an amount to cents.
func Money(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}
