/*
Package loan provides the core data model for the loan calculation engine.

PURPOSE:
  This package contains the value types shared by every calculation
  component: the immutable calculation input, the installment and result
  types produced by the strategies, and the penalty/settlement/restructure
  result types consumed by the surrounding system.

KEY CONCEPTS IN THIS FILE (types.go):
  - CalculationInput: Everything a strategy needs to build a schedule
  - Installment: One row of an amortization schedule
  - CalculationResult: The complete schedule plus derived totals
  - PenaltyResult / SettlementResult / RestructureResult: Quote artifacts

DESIGN PRINCIPLES:
  1. Immutability: Inputs and results are built once and never mutated
  2. Precision: Uses decimal.Decimal for every monetary and rate value
  3. Determinism: Identical inputs always produce identical outputs
  4. Value ownership: The caller owns results; the engine keeps no state

USAGE:
  in := loan.CalculationInput{
      PrincipalAmount:    decimal.NewFromInt(10000),
      AnnualInterestRate: decimal.NewFromFloat(15),
      TermInMonths:       12,
      RepaymentFrequency: loan.FrequencyMonthly,
      CalculationMethod:  loan.MethodReducingBalance,
  }

SEE ALSO:
  - config.go: Numeric policy (rounding, rebate cap)
  - input.go: Input validation and fee derivation
  - errors.go: Error taxonomy
*/
package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMS - Closed sets, dispatched by switch (no runtime inheritance)
// =============================================================================

// Method selects the amortization strategy.
type Method string

const (
	MethodFlatRate         Method = "flat_rate"
	MethodReducingBalance  Method = "reducing_balance"
	MethodSimpleInterest   Method = "simple_interest"
	MethodCompoundInterest Method = "compound_interest"
	MethodAnnuity          Method = "annuity"
	MethodBalloonPayment   Method = "balloon_payment"
	MethodCustomFormula    Method = "custom_formula"
)

// Methods returns every supported calculation method.
func Methods() []Method {
	return []Method{
		MethodFlatRate,
		MethodReducingBalance,
		MethodSimpleInterest,
		MethodCompoundInterest,
		MethodAnnuity,
		MethodBalloonPayment,
		MethodCustomFormula,
	}
}

// Frequency is the repayment cadence.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiweekly   Frequency = "biweekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi_annual"
	FrequencyAnnual     Frequency = "annual"
)

// PenaltyType selects how overdue charges are computed.
type PenaltyType string

const (
	// PenaltyFixedAmount charges a constant amount once overdue.
	PenaltyFixedAmount PenaltyType = "fixed_amount"

	// PenaltyPercentageOfOverdue charges overdueAmount x rate, prorated
	// per day overdue on an annual-rate basis.
	PenaltyPercentageOfOverdue PenaltyType = "percentage_of_overdue"

	// PenaltyPercentageOfInstallment charges installmentAmount x rate,
	// independent of the outstanding amount or days overdue.
	PenaltyPercentageOfInstallment PenaltyType = "percentage_of_installment"

	// PenaltyCompoundingDaily compounds daily on the overdue amount.
	PenaltyCompoundingDaily PenaltyType = "compounding_daily"
)

// InterestBasis is the day-count convention for time-fraction math.
type InterestBasis string

const (
	BasisActual365 InterestBasis = "actual_365"
	BasisActual360 InterestBasis = "actual_360"
	BasisThirty360 InterestBasis = "thirty_360"
)

// =============================================================================
// CALCULATION INPUT - Immutable, constructed once per calculation call
// =============================================================================

// CustomAmortizer is the plug-in point for the custom-formula method.
// The caller supplies the full amortization; the engine normalizes the
// rows into a CalculationResult (numbering, cumulatives, summary).
// Formula text is deliberately NOT parsed by this engine.
type CustomAmortizer func(in CalculationInput) ([]Installment, error)

// CalculationInput carries everything a strategy needs. Zero-valued
// optional fields mean "not configured".
type CalculationInput struct {
	PrincipalAmount    decimal.Decimal
	AnnualInterestRate decimal.Decimal // percent, e.g. 12.5 means 12.5%/year
	TermInMonths       int
	RepaymentFrequency Frequency
	CalculationMethod  Method

	// Optional configuration
	GracePeriodDays         int
	ProcessingFeeAmount     decimal.Decimal
	ProcessingFeePercentage decimal.Decimal
	InsuranceFeeAmount      decimal.Decimal
	InsuranceFeePercentage  decimal.Decimal
	PenaltyRate             decimal.Decimal
	PenaltyType             PenaltyType
	InterestBasis           InterestBasis   // defaults to BasisActual365
	BalloonAmount           decimal.Decimal // balloon method only
	Amortizer               CustomAmortizer // custom-formula method only
	DisbursementDate        time.Time       // defaults to now
}

// =============================================================================
// INSTALLMENT - One period of the schedule, produced in sequence
// =============================================================================

// Installment is one row of an amortization schedule.
//
// Invariants (enforced by every strategy):
//   - Number is 1-based and contiguous
//   - RemainingBalance after the last installment is exactly zero
//   - CumulativePrincipal of the last installment equals the input principal
type Installment struct {
	Number              int
	DueDate             time.Time
	Principal           decimal.Decimal
	Interest            decimal.Decimal
	Fees                decimal.Decimal
	TotalDue            decimal.Decimal
	RemainingBalance    decimal.Decimal
	CumulativePrincipal decimal.Decimal
	CumulativeInterest  decimal.Decimal
}

// =============================================================================
// CALCULATION RESULT - The sole artifact consumed by the caller
// =============================================================================

// Summary aggregates the schedule for display and persistence.
type Summary struct {
	InstallmentCount int
	FirstDueDate     time.Time
	LastDueDate      time.Time
	TotalPrincipal   decimal.Decimal
	TotalInterest    decimal.Decimal
	TotalFees        decimal.Decimal
	TotalAmount      decimal.Decimal
	AveragePayment   decimal.Decimal
}

// CalculationResult is the full output of one strategy invocation.
// It owns no relationship to database identifiers; mapping installments
// to persisted rows is the caller's responsibility.
type CalculationResult struct {
	Method            Method
	Principal         decimal.Decimal
	TotalInterest     decimal.Decimal
	TotalFees         decimal.Decimal
	TotalAmount       decimal.Decimal
	InstallmentAmount decimal.Decimal // level payment, where the method has one
	EffectiveRate     decimal.Decimal // effective annual rate, percent
	APR               decimal.Decimal // annualized interest + fees, percent
	Installments      []Installment
	Summary           Summary
}

// =============================================================================
// PENALTY RESULT - Stateless, recomputed fresh on every evaluation
// =============================================================================

// PenaltyResult reports one overdue-charge evaluation. The engine never
// accumulates penalties; preventing double-application across repeated
// invocations is the caller's job.
type PenaltyResult struct {
	PenaltyAmount   decimal.Decimal
	DaysOverdue     int
	RateUsed        decimal.Decimal
	TypeUsed        PenaltyType
	CalculationDate time.Time
}

// =============================================================================
// EARLY SETTLEMENT RESULT
// =============================================================================

// SettlementResult is a payoff quote at a settlement date.
type SettlementResult struct {
	SettlementDate        time.Time
	RemainingPrincipal    decimal.Decimal
	RemainingInterest     decimal.Decimal
	InterestRebate        decimal.Decimal
	PenaltyDue            decimal.Decimal
	TotalSettlementAmount decimal.Decimal
	Savings               decimal.Decimal // vs. paying the schedule to term
}

// =============================================================================
// RESTRUCTURE REQUEST / RESULT
// =============================================================================

// RestructureRequest describes the changes applied on top of the original
// loan. Zero values mean "keep the original setting". A restructure is
// always computed as a brand-new schedule, never as a patch to the old one.
type RestructureRequest struct {
	NewTermInMonths     int
	NewAnnualRate       *decimal.Decimal
	NewFrequency        Frequency
	NewMethod           Method
	AdditionalPrincipal decimal.Decimal
	MoratoriumMonths    int
	RestructureFee      decimal.Decimal
}

// RestructureResult pairs the original and the recomputed schedules.
type RestructureResult struct {
	OriginalLoan         *CalculationResult
	RestructuredLoan     *CalculationResult
	RestructureCost      decimal.Decimal
	TotalSavings         decimal.Decimal // positive = restructure costs less interest
	NewInstallmentAmount decimal.Decimal
	ExtensionMonths      int
}
