/*
formulas.go - Annuity and compound-interest formulas

PURPOSE:
  The two closed-form formulas the strategies share. AnnuityPayment solves
  the fixed payment that fully amortizes a principal over n periods;
  CompoundAmount grows a principal at a periodic rate.

FORMULAS:
  AnnuityPayment: P * r * (1+r)^n / ((1+r)^n - 1)
  CompoundAmount: P * (1+r)^n

ZERO-RATE POLICY:
  A zero periodic rate degenerates the annuity formula, so both helpers
  special-case it: payment = P/n, compound amount = P.
*/
package fincalc

import (
	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

// AnnuityPayment returns the level payment that amortizes principal over
// n periods at the periodic rate. Returns ErrUnsolvableAnnuity when the
// combination degenerates to a non-positive payment.
func AnnuityPayment(principal decimal.Decimal, rate decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, loan.ErrUnsolvableAnnuity
	}
	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))), nil
	}

	grown := one.Add(rate).Pow(decimal.NewFromInt(int64(n)))
	denominator := grown.Sub(one)
	if !denominator.IsPositive() {
		return decimal.Zero, loan.ErrUnsolvableAnnuity
	}
	payment := principal.Mul(rate).Mul(grown).Div(denominator)
	if !payment.IsPositive() {
		return decimal.Zero, loan.ErrUnsolvableAnnuity
	}
	return payment, nil
}

// CompoundAmount returns principal grown at the periodic rate for n
// periods: P * (1+r)^n.
func CompoundAmount(principal decimal.Decimal, rate decimal.Decimal, n int) decimal.Decimal {
	if rate.IsZero() || n <= 0 {
		return principal
	}
	return principal.Mul(one.Add(rate).Pow(decimal.NewFromInt(int64(n))))
}

// CompoundInterest returns the interest portion of compound growth:
// P * ((1+r)^n - 1).
func CompoundInterest(principal decimal.Decimal, rate decimal.Decimal, n int) decimal.Decimal {
	return CompoundAmount(principal, rate, n).Sub(principal)
}
