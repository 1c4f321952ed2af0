/*
daycount.go - Day-count conventions

PURPOSE:
  Converts a date range into a fraction of a year under a chosen basis.
  Used by the simple-interest strategy (actual-time accrual) and anywhere
  a rate must be prorated over calendar days.

CONVENTIONS:
  ACTUAL_365: actual calendar days / 365
  ACTUAL_360: actual calendar days / 360
  THIRTY_360: 30/360 U.S. (bond basis) day adjustment / 360
*/
package fincalc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

// DaysBetween returns whole calendar days from 'from' to 'to', ignoring
// the time-of-day component.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// Days360US returns the day count from start to end under 30/360 U.S.
// (bond basis) rules:
//   - if d1 == 31, d1 = 30
//   - if d2 == 31 and d1 >= 30, d2 = 30
func Days360US(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 >= 30 {
		d2 = 30
	}
	return (y2-y1)*360 + int(m2-m1)*30 + (d2 - d1)
}

// DayCountFraction returns the year fraction between two dates under the
// given basis.
func DayCountFraction(from, to time.Time, basis loan.InterestBasis) decimal.Decimal {
	switch basis {
	case loan.BasisActual360:
		return decimal.NewFromInt(int64(DaysBetween(from, to))).Div(decimal.NewFromInt(360))
	case loan.BasisThirty360:
		return decimal.NewFromInt(int64(Days360US(from, to))).Div(decimal.NewFromInt(360))
	default: // ACT/365
		return decimal.NewFromInt(int64(DaysBetween(from, to))).Div(decimal.NewFromInt(365))
	}
}
