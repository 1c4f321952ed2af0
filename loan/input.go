/*
input.go - Input validation and derived input values

PURPOSE:
  Validates a CalculationInput before any computation begins (no partial
  results are ever returned for bad input) and derives the values every
  strategy needs from the optional fee fields.

VALIDATION ORDER:
  principal > 0, rate >= 0, term > 0, known frequency, known method,
  then method-specific checks (balloon bounds, amortizer presence).
*/
package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Validate rejects malformed inputs synchronously. A nil return means
// every strategy precondition holds.
func (in CalculationInput) Validate() error {
	if !in.PrincipalAmount.IsPositive() {
		return &InputError{Field: "principalAmount", Reason: "must be positive", Err: ErrInvalidPrincipal}
	}
	if in.AnnualInterestRate.IsNegative() {
		return &InputError{Field: "annualInterestRate", Reason: "must not be negative", Err: ErrInvalidRate}
	}
	if in.TermInMonths <= 0 {
		return &InputError{Field: "termInMonths", Reason: "must be positive", Err: ErrInvalidTerm}
	}

	switch in.RepaymentFrequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual:
	default:
		return &InputError{Field: "repaymentFrequency", Reason: string(in.RepaymentFrequency), Err: ErrUnsupportedFrequency}
	}

	switch in.CalculationMethod {
	case MethodFlatRate, MethodReducingBalance, MethodSimpleInterest,
		MethodCompoundInterest, MethodAnnuity:
	case MethodBalloonPayment:
		if !in.BalloonAmount.IsPositive() || in.BalloonAmount.GreaterThanOrEqual(in.PrincipalAmount) {
			return &InputError{Field: "balloonAmount", Reason: "must be positive and below principal", Err: ErrInvalidBalloon}
		}
	case MethodCustomFormula:
		if in.Amortizer == nil {
			return &InputError{Field: "customFormula", Reason: "no amortizer supplied", Err: ErrMissingAmortizer}
		}
	default:
		return &InputError{Field: "calculationMethod", Reason: string(in.CalculationMethod), Err: ErrUnsupportedMethod}
	}

	return nil
}

// Basis returns the configured day-count convention, defaulting to ACT/365.
func (in CalculationInput) Basis() InterestBasis {
	if in.InterestBasis == "" {
		return BasisActual365
	}
	return in.InterestBasis
}

// StartDate returns the disbursement date, defaulting to today (UTC,
// day granularity) when unset.
func (in CalculationInput) StartDate() time.Time {
	if !in.DisbursementDate.IsZero() {
		return in.DisbursementDate
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// UpfrontFees derives the total processing + insurance fees. Amount and
// percentage variants are cumulative when both are configured.
func (in CalculationInput) UpfrontFees(cfg Config) decimal.Decimal {
	fees := in.ProcessingFeeAmount.Add(in.InsuranceFeeAmount)
	if in.ProcessingFeePercentage.IsPositive() {
		fees = fees.Add(in.PrincipalAmount.Mul(in.ProcessingFeePercentage).Div(hundred))
	}
	if in.InsuranceFeePercentage.IsPositive() {
		fees = fees.Add(in.PrincipalAmount.Mul(in.InsuranceFeePercentage).Div(hundred))
	}
	return cfg.Round(fees)
}

// TermInYears returns the term as an exact decimal fraction of years.
func (in CalculationInput) TermInYears() decimal.Decimal {
	return decimal.NewFromInt(int64(in.TermInMonths)).Div(decimal.NewFromInt(12))
}
