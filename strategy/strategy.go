/*
Package strategy implements one amortization strategy per calculation
method behind a shared contract.

PURPOSE:
  The loan-lifecycle code selects a strategy by calculation method,
  invokes it with a CalculationInput, and receives a full
  CalculationResult. The same strategy also answers penalty and
  early-settlement queries by delegating to the penalty and settlement
  calculators, so callers deal with a single object per method.

KEY CONCEPTS:
  - Strategy: The three-operation contract every method implements
  - ForMethod: Pure mapping from method to strategy (closed set, switch
    dispatch - no runtime inheritance)
  - Calculate: One-shot convenience using the default numeric policy

METHOD SET:
  flat_rate, reducing_balance, simple_interest, compound_interest,
  annuity, balloon_payment, custom_formula

USAGE:
  s, err := strategy.ForMethod(loan.MethodReducingBalance, loan.DefaultConfig())
  result, err := s.CalculateLoan(input)

SEE ALSO:
  - schedule.go: Shared schedule-generation skeleton
  - penalty: Overdue-charge calculator
  - settlement: Payoff and restructure calculators
*/
package strategy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
	"github.com/warp/loan-engine/penalty"
	"github.com/warp/loan-engine/settlement"
)

// =============================================================================
// STRATEGY CONTRACT
// =============================================================================

// Strategy is the contract every calculation method implements. All three
// operations are pure: identical inputs always produce identical outputs.
type Strategy interface {
	// Method identifies this strategy.
	Method() loan.Method

	// CalculateLoan builds the full amortization schedule.
	CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error)

	// CalculatePenalty computes the overdue charge for one position.
	CalculatePenalty(daysOverdue int, overdueAmount, rate decimal.Decimal, ptype loan.PenaltyType) (*loan.PenaltyResult, error)

	// CalculateEarlySettlement derives a payoff quote from an
	// already-computed schedule.
	CalculateEarlySettlement(original *loan.CalculationResult, settlementDate time.Time, paymentsMade int) (*loan.SettlementResult, error)
}

// ForMethod maps a calculation method to its strategy. The method set is
// fixed and known at compile time.
func ForMethod(m loan.Method, cfg loan.Config) (Strategy, error) {
	b := newBase(m, cfg)
	switch m {
	case loan.MethodFlatRate:
		return &flatRate{base: b}, nil
	case loan.MethodReducingBalance:
		return &reducingBalance{base: b}, nil
	case loan.MethodSimpleInterest:
		return &simpleInterest{base: b}, nil
	case loan.MethodCompoundInterest:
		return &compoundInterest{base: b}, nil
	case loan.MethodAnnuity:
		return &annuity{base: b}, nil
	case loan.MethodBalloonPayment:
		return &balloonPayment{base: b}, nil
	case loan.MethodCustomFormula:
		return &customFormula{base: b}, nil
	default:
		return nil, &loan.InputError{Field: "calculationMethod", Reason: string(m), Err: loan.ErrUnsupportedMethod}
	}
}

// Calculate runs one calculation with the default numeric policy,
// dispatching on the input's calculation method.
func Calculate(in loan.CalculationInput) (*loan.CalculationResult, error) {
	return CalculateWith(loan.DefaultConfig(), in)
}

// CalculateWith runs one calculation under an explicit numeric policy.
func CalculateWith(cfg loan.Config, in loan.CalculationInput) (*loan.CalculationResult, error) {
	s, err := ForMethod(in.CalculationMethod, cfg)
	if err != nil {
		return nil, err
	}
	return s.CalculateLoan(in)
}

// =============================================================================
// SHARED BASE - Config plus penalty/settlement delegation
// =============================================================================

type base struct {
	method      loan.Method
	cfg         loan.Config
	penalties   *penalty.Calculator
	settlements *settlement.Calculator
}

func newBase(m loan.Method, cfg loan.Config) base {
	return base{
		method:      m,
		cfg:         cfg,
		penalties:   penalty.NewCalculator(cfg),
		settlements: settlement.NewCalculator(cfg),
	}
}

func (b *base) Method() loan.Method { return b.method }

func (b *base) CalculatePenalty(daysOverdue int, overdueAmount, rate decimal.Decimal, ptype loan.PenaltyType) (*loan.PenaltyResult, error) {
	return b.penalties.Calculate(daysOverdue, overdueAmount, rate, ptype)
}

func (b *base) CalculateEarlySettlement(original *loan.CalculationResult, settlementDate time.Time, paymentsMade int) (*loan.SettlementResult, error) {
	return b.settlements.EarlySettlement(original, settlementDate, paymentsMade)
}
