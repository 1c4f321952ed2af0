/*
Package fincalc provides the numeric utilities underneath every strategy.

PURPOSE:
  Pure functions for periodic-rate conversion, installment counting,
  annuity and compound-interest formulas, day-count fractions, and due-date
  arithmetic. No state, no I/O; everything is decimal-exact.

KEY CONCEPTS IN THIS FILE (rates.go):
  - PeriodsPerYear: How many repayment periods fit in a year
  - InstallmentCount: Term in months scaled to the chosen frequency
  - PeriodicRate: Annual percentage converted to a per-period fraction

INSTALLMENT COUNT RULE:
  count = round(termInMonths * periodsPerYear / 12) to the nearest whole
  period, minimum 1. A 12-month weekly loan is 52 installments; a 1-month
  weekly loan is round(52/12) = 4. This rule is part of the public
  contract because it affects total interest.

SEE ALSO:
  - formulas.go: Annuity and compound formulas
  - daycount.go: Day-count conventions
  - dates.go: Due-date stepping
*/
package fincalc

import (
	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	one     = decimal.NewFromInt(1)
)

// PeriodsPerYear returns how many repayment periods occur per year for
// the frequency.
func PeriodsPerYear(f loan.Frequency) (decimal.Decimal, error) {
	switch f {
	case loan.FrequencyDaily:
		return decimal.NewFromInt(365), nil
	case loan.FrequencyWeekly:
		return decimal.NewFromInt(52), nil
	case loan.FrequencyBiweekly:
		return decimal.NewFromInt(26), nil
	case loan.FrequencyMonthly:
		return twelve, nil
	case loan.FrequencyQuarterly:
		return decimal.NewFromInt(4), nil
	case loan.FrequencySemiAnnual:
		return decimal.NewFromInt(2), nil
	case loan.FrequencyAnnual:
		return one, nil
	default:
		return decimal.Zero, loan.ErrUnsupportedFrequency
	}
}

// InstallmentCount converts a term in months to a whole number of
// repayment periods (rounded to nearest, minimum 1).
func InstallmentCount(termInMonths int, f loan.Frequency) (int, error) {
	ppy, err := PeriodsPerYear(f)
	if err != nil {
		return 0, err
	}
	n := decimal.NewFromInt(int64(termInMonths)).Mul(ppy).Div(twelve).Round(0).IntPart()
	if n < 1 {
		n = 1
	}
	return int(n), nil
}

// PeriodicRate converts an annual percentage rate to the per-period
// fractional rate. For daily repayment the basis selects the denominator
// (365 for ACT/365, 360 for ACT/360 and 30/360); for every other
// frequency the nominal periods-per-year divides the annual rate.
func PeriodicRate(annualPct decimal.Decimal, f loan.Frequency, basis loan.InterestBasis) (decimal.Decimal, error) {
	if f == loan.FrequencyDaily {
		denom := decimal.NewFromInt(365)
		if basis == loan.BasisActual360 || basis == loan.BasisThirty360 {
			denom = decimal.NewFromInt(360)
		}
		return annualPct.Div(hundred).Div(denom), nil
	}
	ppy, err := PeriodsPerYear(f)
	if err != nil {
		return decimal.Zero, err
	}
	return annualPct.Div(hundred).Div(ppy), nil
}

// EffectiveAnnualRate converts a periodic rate back to the compounded
// effective annual percentage: ((1+r)^ppy - 1) * 100.
func EffectiveAnnualRate(periodicRate decimal.Decimal, f loan.Frequency) (decimal.Decimal, error) {
	if periodicRate.IsZero() {
		return decimal.Zero, nil
	}
	ppy, err := PeriodsPerYear(f)
	if err != nil {
		return decimal.Zero, err
	}
	grown := one.Add(periodicRate).Pow(ppy)
	return grown.Sub(one).Mul(hundred), nil
}
