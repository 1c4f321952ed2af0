/*
Package factory converts declarative loan-product configuration into
engine inputs.

PURPOSE:
  The surrounding system stores loan products (rate, term bounds, fee
  schedule, penalty configuration) as data, not code. This factory
  validates a product definition plus the loan-specific overrides
  (requested amount, term, disbursement date) and produces the
  CalculationInput the strategies consume.

JSON SCHEMA:
  {
    "id": "mf-standard",
    "name": "Standard Microfinance",
    "calculation_method": "reducing_balance",
    "repayment_frequency": "monthly",
    "annual_interest_rate": "15",
    "min_term_months": 3,
    "max_term_months": 36,
    "min_principal": "500",
    "max_principal": "50000",
    "processing_fee_percentage": "1.5",
    "insurance_fee_amount": "25",
    "penalty_rate": "10",
    "penalty_type": "percentage_of_overdue",
    "grace_period_days": 7
  }

KEY FEATURES:
  - Validates structure and bounds before any calculation
  - Sets sensible defaults (monthly frequency, ACT/365 basis)
  - Decimal fields are JSON strings to keep exactness end to end

USAGE:
  product, err := factory.ParseProduct(jsonStr)
  in, err := product.BuildInput(factory.LoanRequest{
      Amount:       decimal.RequireFromString("10000"),
      TermInMonths: 12,
  })
  result, err := strategy.Calculate(in)

SEE ALSO:
  - loan/types.go: CalculationInput
  - strategy: Schedule generation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// Product is the declarative definition of a loan product.
type Product struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	CalculationMethod       string          `json:"calculation_method"`
	RepaymentFrequency      string          `json:"repayment_frequency,omitempty"`
	AnnualInterestRate      decimal.Decimal `json:"annual_interest_rate"`
	MinTermMonths           int             `json:"min_term_months,omitempty"`
	MaxTermMonths           int             `json:"max_term_months,omitempty"`
	MinPrincipal            decimal.Decimal `json:"min_principal,omitempty"`
	MaxPrincipal            decimal.Decimal `json:"max_principal,omitempty"`
	ProcessingFeeAmount     decimal.Decimal `json:"processing_fee_amount,omitempty"`
	ProcessingFeePercentage decimal.Decimal `json:"processing_fee_percentage,omitempty"`
	InsuranceFeeAmount      decimal.Decimal `json:"insurance_fee_amount,omitempty"`
	InsuranceFeePercentage  decimal.Decimal `json:"insurance_fee_percentage,omitempty"`
	PenaltyRate             decimal.Decimal `json:"penalty_rate,omitempty"`
	PenaltyType             string          `json:"penalty_type,omitempty"`
	InterestBasis           string          `json:"interest_basis,omitempty"`
	GracePeriodDays         int             `json:"grace_period_days,omitempty"`
	BalloonAmount           decimal.Decimal `json:"balloon_amount,omitempty"`
}

// LoanRequest carries the loan-specific overrides for one application.
type LoanRequest struct {
	Amount           decimal.Decimal
	TermInMonths     int
	DisbursementDate time.Time
}

// =============================================================================
// PARSING AND VALIDATION
// =============================================================================

// ParseProduct parses and validates a JSON product definition.
func ParseProduct(jsonStr string) (*Product, error) {
	var p Product
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("failed to parse product JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the product definition itself, independent of any loan.
func (p *Product) Validate() error {
	if p.ID == "" {
		return &loan.InputError{Field: "id", Reason: "required", Err: loan.ErrUnsupportedMethod}
	}
	if _, ok := methodFromString(p.CalculationMethod); !ok {
		return &loan.InputError{Field: "calculation_method", Reason: p.CalculationMethod, Err: loan.ErrUnsupportedMethod}
	}
	if p.RepaymentFrequency != "" {
		if _, ok := frequencyFromString(p.RepaymentFrequency); !ok {
			return &loan.InputError{Field: "repayment_frequency", Reason: p.RepaymentFrequency, Err: loan.ErrUnsupportedFrequency}
		}
	}
	if p.AnnualInterestRate.IsNegative() {
		return &loan.InputError{Field: "annual_interest_rate", Reason: "must not be negative", Err: loan.ErrInvalidRate}
	}
	if p.MinTermMonths > 0 && p.MaxTermMonths > 0 && p.MinTermMonths > p.MaxTermMonths {
		return &loan.InputError{Field: "min_term_months", Reason: "exceeds max_term_months", Err: loan.ErrInvalidTerm}
	}
	return nil
}

// BuildInput combines the product with a loan request. Bounds are
// enforced here so a malformed application never reaches a strategy.
func (p *Product) BuildInput(req LoanRequest) (loan.CalculationInput, error) {
	if p.MinPrincipal.IsPositive() && req.Amount.LessThan(p.MinPrincipal) {
		return loan.CalculationInput{}, &loan.InputError{Field: "amount", Reason: "below product minimum", Err: loan.ErrInvalidPrincipal}
	}
	if p.MaxPrincipal.IsPositive() && req.Amount.GreaterThan(p.MaxPrincipal) {
		return loan.CalculationInput{}, &loan.InputError{Field: "amount", Reason: "above product maximum", Err: loan.ErrInvalidPrincipal}
	}
	if p.MinTermMonths > 0 && req.TermInMonths < p.MinTermMonths {
		return loan.CalculationInput{}, &loan.InputError{Field: "termInMonths", Reason: "below product minimum", Err: loan.ErrInvalidTerm}
	}
	if p.MaxTermMonths > 0 && req.TermInMonths > p.MaxTermMonths {
		return loan.CalculationInput{}, &loan.InputError{Field: "termInMonths", Reason: "above product maximum", Err: loan.ErrInvalidTerm}
	}

	method, _ := methodFromString(p.CalculationMethod)
	frequency := loan.FrequencyMonthly
	if p.RepaymentFrequency != "" {
		frequency, _ = frequencyFromString(p.RepaymentFrequency)
	}

	in := loan.CalculationInput{
		PrincipalAmount:         req.Amount,
		AnnualInterestRate:      p.AnnualInterestRate,
		TermInMonths:            req.TermInMonths,
		RepaymentFrequency:      frequency,
		CalculationMethod:       method,
		GracePeriodDays:         p.GracePeriodDays,
		ProcessingFeeAmount:     p.ProcessingFeeAmount,
		ProcessingFeePercentage: p.ProcessingFeePercentage,
		InsuranceFeeAmount:      p.InsuranceFeeAmount,
		InsuranceFeePercentage:  p.InsuranceFeePercentage,
		PenaltyRate:             p.PenaltyRate,
		PenaltyType:             loan.PenaltyType(p.PenaltyType),
		InterestBasis:           loan.InterestBasis(p.InterestBasis),
		BalloonAmount:           p.BalloonAmount,
		DisbursementDate:        req.DisbursementDate,
	}
	if err := in.Validate(); err != nil {
		return loan.CalculationInput{}, err
	}
	return in, nil
}

// =============================================================================
// ENUM LOOKUPS
// =============================================================================

func methodFromString(s string) (loan.Method, bool) {
	for _, m := range loan.Methods() {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

func frequencyFromString(s string) (loan.Frequency, bool) {
	switch f := loan.Frequency(s); f {
	case loan.FrequencyDaily, loan.FrequencyWeekly, loan.FrequencyBiweekly,
		loan.FrequencyMonthly, loan.FrequencyQuarterly, loan.FrequencySemiAnnual,
		loan.FrequencyAnnual:
		return f, true
	default:
		return "", false
	}
}
