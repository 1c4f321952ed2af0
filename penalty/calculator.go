/*
Package penalty computes overdue charges.

PURPOSE:
  Given days overdue, the overdue amount, a penalty rate, and a penalty
  type, produce the charge. The calculator is pure and idempotent: the
  same inputs always yield the same result. The surrounding system, not
  this engine, is responsible for not double-applying penalties across
  repeated invocations.

PENALTY TYPES:
  FIXED_AMOUNT:              rate is the flat charge, applied once overdue
  PERCENTAGE_OF_OVERDUE:     overdue x rate%, prorated per day overdue on
                             an annual-rate basis (days / dayBasis)
  PERCENTAGE_OF_INSTALLMENT: amount x rate%, independent of days overdue
                             (callers pass the installment amount)
  COMPOUNDING_DAILY:         overdue x ((1 + rate%/dayBasis)^days - 1)

USAGE:
  calc := penalty.NewCalculator(loan.DefaultConfig())
  res, err := calc.Calculate(14, overdue, rate, loan.PenaltyPercentageOfOverdue)

SEE ALSO:
  - fincalc/formulas.go: Compound-interest utility
  - loan/config.go: Day basis and rounding policy
*/
package penalty

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

var hundred = decimal.NewFromInt(100)

// Calculator computes overdue charges under a fixed numeric policy.
type Calculator struct {
	cfg loan.Config
}

// NewCalculator creates a penalty calculator with the given policy.
func NewCalculator(cfg loan.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate computes the penalty as of today.
func (c *Calculator) Calculate(daysOverdue int, overdueAmount, rate decimal.Decimal, ptype loan.PenaltyType) (*loan.PenaltyResult, error) {
	return c.CalculateAt(daysOverdue, overdueAmount, rate, ptype, time.Now().UTC())
}

// CalculateAt computes the penalty with an explicit calculation date.
// Passing the date keeps results reproducible for a daily accrual job
// that re-evaluates past positions.
func (c *Calculator) CalculateAt(daysOverdue int, overdueAmount, rate decimal.Decimal, ptype loan.PenaltyType, asOf time.Time) (*loan.PenaltyResult, error) {
	if rate.IsNegative() {
		return nil, &loan.InputError{Field: "penaltyRate", Reason: "must not be negative", Err: loan.ErrInvalidRate}
	}
	if overdueAmount.IsNegative() {
		return nil, &loan.InputError{Field: "overdueAmount", Reason: "must not be negative", Err: loan.ErrInvalidPrincipal}
	}

	result := &loan.PenaltyResult{
		DaysOverdue:     daysOverdue,
		RateUsed:        rate,
		TypeUsed:        ptype,
		CalculationDate: asOf,
		PenaltyAmount:   decimal.Zero,
	}

	// Nothing is overdue yet.
	if daysOverdue <= 0 {
		return result, nil
	}

	dayBasis := decimal.NewFromInt(int64(c.cfg.PenaltyDayBasis))
	days := decimal.NewFromInt(int64(daysOverdue))

	var amount decimal.Decimal
	switch ptype {
	case loan.PenaltyFixedAmount:
		// The configured rate IS the flat charge.
		amount = rate

	case loan.PenaltyPercentageOfOverdue:
		amount = overdueAmount.Mul(rate).Div(hundred).Mul(days).Div(dayBasis)

	case loan.PenaltyPercentageOfInstallment:
		amount = overdueAmount.Mul(rate).Div(hundred)

	case loan.PenaltyCompoundingDaily:
		dailyRate := rate.Div(hundred).Div(dayBasis)
		amount = fincalc.CompoundInterest(overdueAmount, dailyRate, daysOverdue)

	default:
		return nil, &loan.InputError{Field: "penaltyType", Reason: string(ptype), Err: loan.ErrUnsupportedMethod}
	}

	result.PenaltyAmount = c.cfg.Round(amount)
	return result, nil
}
