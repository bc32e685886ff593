package model

import "github.com/shopspring/decimal"

// Column shapes of the stored amounts. Rates and register amounts are
// NUMERIC(14, 2); share totals are NUMERIC(18, 2).
const (
	MoneyPrecision      = 14
	MoneyScale          = 2
	ShareTotalPrecision = 18
)

// FitsNumeric reports whether d is stored by a NUMERIC(precision, scale)
// column exactly, without rounding or overflow.
func FitsNumeric(d decimal.Decimal, precision, scale int) bool {
	if !d.Equal(d.Truncate(int32(scale))) {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, int32(precision-scale)))
}

// FitsMoney reports whether d fits a rate or register amount column.
func FitsMoney(d decimal.Decimal) bool {
	return FitsNumeric(d, MoneyPrecision, MoneyScale)
}
