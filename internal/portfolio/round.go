package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundingPlaces is the number of decimals kept in report values.
const RoundingPlaces = 2

// round rounds half away from zero to RoundingPlaces decimals.
//
//	round(123.456789) // 123.46
//	round(1.994)      // 1.99
func round(value float64) float64 {
	return decimal.NewFromFloat(value).Round(RoundingPlaces).InexactFloat64()
}

// dayOf truncates t to midnight UTC of its calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
