package strategy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/loan-engine/loan"
	"github.com/warp/loan-engine/strategy"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var disbursement = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func input(method loan.Method) loan.CalculationInput {
	return loan.CalculationInput{
		PrincipalAmount:    dec("10000"),
		AnnualInterestRate: dec("15"),
		TermInMonths:       12,
		RepaymentFrequency: loan.FrequencyMonthly,
		CalculationMethod:  method,
		DisbursementDate:   disbursement,
	}
}

func calculate(t *testing.T, in loan.CalculationInput) *loan.CalculationResult {
	t.Helper()
	result, err := strategy.Calculate(in)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// assertScheduleInvariants checks the contract every method must honor.
func assertScheduleInvariants(t *testing.T, in loan.CalculationInput, result *loan.CalculationResult) {
	t.Helper()
	n := len(result.Installments)
	require.Greater(t, n, 0)

	for i, inst := range result.Installments {
		assert.Equal(t, i+1, inst.Number, "installment numbers must be 1-based and contiguous")
	}

	last := result.Installments[n-1]
	assert.True(t, last.RemainingBalance.IsZero(),
		"remaining balance after the last installment must be exactly zero, got %v", last.RemainingBalance)
	assert.True(t, last.CumulativePrincipal.Equal(in.PrincipalAmount),
		"cumulative principal must equal the input principal exactly, got %v", last.CumulativePrincipal)

	sum := decimal.Zero
	for _, inst := range result.Installments {
		sum = sum.Add(inst.Principal)
	}
	assert.True(t, sum.Equal(in.PrincipalAmount), "principal components must sum to the principal, got %v", sum)

	assert.Equal(t, n, result.Summary.InstallmentCount)
	assert.True(t, result.Summary.FirstDueDate.Equal(result.Installments[0].DueDate))
	assert.True(t, result.Summary.LastDueDate.Equal(last.DueDate))
}

// =============================================================================
// REDUCING BALANCE
// =============================================================================

func TestReducingBalance_ReferenceScenario(t *testing.T) {
	// GIVEN: 10,000 at 15%/year over 12 monthly installments
	// WHEN: Calculating with the reducing-balance method
	// THEN: Level installment ~902.58, total interest ~831

	result := calculate(t, input(loan.MethodReducingBalance))

	assert.True(t, result.InstallmentAmount.Equal(dec("902.58")),
		"expected installment 902.58, got %v", result.InstallmentAmount)
	assert.True(t, result.TotalInterest.GreaterThan(dec("830")), "total interest too low: %v", result.TotalInterest)
	assert.True(t, result.TotalInterest.LessThan(dec("832")), "total interest too high: %v", result.TotalInterest)

	assertScheduleInvariants(t, input(loan.MethodReducingBalance), result)
}

func TestReducingBalance_BalanceStrictlyDecreases(t *testing.T) {
	result := calculate(t, input(loan.MethodReducingBalance))

	previous := result.Principal
	for _, inst := range result.Installments {
		assert.True(t, inst.RemainingBalance.LessThan(previous),
			"balance must strictly decrease for a positive rate: period %d", inst.Number)
		previous = inst.RemainingBalance
	}
}

func TestReducingBalance_FirstPeriodInterestOnFullPrincipal(t *testing.T) {
	result := calculate(t, input(loan.MethodReducingBalance))

	// 10,000 x 1.25% = 125.00
	assert.True(t, result.Installments[0].Interest.Equal(dec("125")),
		"expected 125 first-period interest, got %v", result.Installments[0].Interest)
}

func TestReducingBalance_SinglePeriodTerm(t *testing.T) {
	// GIVEN: A one-month loan
	// THEN: One installment equal to principal plus one period of interest
	in := input(loan.MethodReducingBalance)
	in.TermInMonths = 1

	result := calculate(t, in)

	require.Len(t, result.Installments, 1)
	only := result.Installments[0]
	assert.True(t, only.Principal.Equal(dec("10000")))
	assert.True(t, only.Interest.Equal(dec("125")))
	assertScheduleInvariants(t, in, result)
}

// =============================================================================
// FLAT RATE
// =============================================================================

func TestFlatRate_ReferenceScenario(t *testing.T) {
	// GIVEN: 10,000 at 15%/year over 12 monthly installments, flat rate
	// THEN: Total interest exactly 1,500; installment (10,000+1,500)/12 = 958.33

	result := calculate(t, input(loan.MethodFlatRate))

	assert.True(t, result.TotalInterest.Equal(dec("1500")),
		"flat interest must be exactly 1500, got %v", result.TotalInterest)
	assert.True(t, result.InstallmentAmount.Equal(dec("958.33")),
		"expected installment 958.33, got %v", result.InstallmentAmount)

	assertScheduleInvariants(t, input(loan.MethodFlatRate), result)
}

func TestFlatRate_BalanceDeclinesLinearly(t *testing.T) {
	result := calculate(t, input(loan.MethodFlatRate))

	// Every period repays the same principal except the residue absorber.
	first := result.Installments[0].Principal
	for _, inst := range result.Installments[:len(result.Installments)-1] {
		assert.True(t, inst.Principal.Equal(first), "period %d principal should be level", inst.Number)
	}
}

func TestFlatRate_ChargesMoreInterestThanReducing(t *testing.T) {
	// Flat rate charges on the original principal throughout, so its total
	// interest dominates reducing balance for identical inputs.
	flat := calculate(t, input(loan.MethodFlatRate))
	reducing := calculate(t, input(loan.MethodReducingBalance))

	assert.True(t, flat.TotalInterest.GreaterThanOrEqual(reducing.TotalInterest))
	assert.True(t, flat.Principal.Equal(reducing.Principal))
}

// =============================================================================
// ZERO RATE - same policy for every amortizing method
// =============================================================================

func TestZeroRate_EqualInstallmentsNoInterest(t *testing.T) {
	for _, method := range []loan.Method{
		loan.MethodFlatRate,
		loan.MethodReducingBalance,
		loan.MethodSimpleInterest,
		loan.MethodCompoundInterest,
		loan.MethodAnnuity,
	} {
		t.Run(string(method), func(t *testing.T) {
			in := loan.CalculationInput{
				PrincipalAmount:    dec("1200"),
				AnnualInterestRate: decimal.Zero,
				TermInMonths:       12,
				RepaymentFrequency: loan.FrequencyMonthly,
				CalculationMethod:  method,
				DisbursementDate:   disbursement,
			}
			result := calculate(t, in)

			assert.True(t, result.TotalInterest.IsZero(), "zero rate must produce zero interest")
			for _, inst := range result.Installments {
				assert.True(t, inst.Principal.Equal(dec("100")),
					"period %d: expected 100.00, got %v", inst.Number, inst.Principal)
				assert.True(t, inst.Interest.IsZero())
			}
			assertScheduleInvariants(t, in, result)
		})
	}
}

// =============================================================================
// SIMPLE INTEREST
// =============================================================================

func TestSimpleInterest_AccruesOverActualDays(t *testing.T) {
	// GIVEN: 1,000 at 10% disbursed 2025-01-15, 12 monthly installments
	// (365 actual days to the final due date under ACT/365)
	// THEN: Total interest = 1,000 x 10% x 1 = 100.00
	in := loan.CalculationInput{
		PrincipalAmount:    dec("1000"),
		AnnualInterestRate: dec("10"),
		TermInMonths:       12,
		RepaymentFrequency: loan.FrequencyMonthly,
		CalculationMethod:  loan.MethodSimpleInterest,
		DisbursementDate:   disbursement,
	}
	result := calculate(t, in)

	assert.True(t, result.TotalInterest.Equal(dec("100")),
		"expected 100.00 interest, got %v", result.TotalInterest)
	assertScheduleInvariants(t, in, result)
}

// =============================================================================
// COMPOUND INTEREST
// =============================================================================

func TestCompoundInterest_TotalAmountCompounds(t *testing.T) {
	// 1,000 at 12%/year monthly over 12 periods: 1000 x 1.01^12 = 1126.83
	in := loan.CalculationInput{
		PrincipalAmount:    dec("1000"),
		AnnualInterestRate: dec("12"),
		TermInMonths:       12,
		RepaymentFrequency: loan.FrequencyMonthly,
		CalculationMethod:  loan.MethodCompoundInterest,
		DisbursementDate:   disbursement,
	}
	result := calculate(t, in)

	assert.True(t, result.TotalInterest.Equal(dec("126.83")),
		"expected 126.83 compound interest, got %v", result.TotalInterest)
	assert.True(t, result.TotalAmount.Equal(dec("1126.83")))
	assertScheduleInvariants(t, in, result)
}

func TestCompoundInterest_SinglePeriodDoesNotCompound(t *testing.T) {
	in := loan.CalculationInput{
		PrincipalAmount:    dec("1000"),
		AnnualInterestRate: dec("12"),
		TermInMonths:       1,
		RepaymentFrequency: loan.FrequencyMonthly,
		CalculationMethod:  loan.MethodCompoundInterest,
		DisbursementDate:   disbursement,
	}
	result := calculate(t, in)

	require.Len(t, result.Installments, 1)
	assert.True(t, result.TotalInterest.Equal(dec("10")),
		"one period of 1%% on 1,000 is 10.00, got %v", result.TotalInterest)
}

// =============================================================================
// ANNUITY
// =============================================================================

func TestAnnuity_MatchesReducingBalanceCore(t *testing.T) {
	// GIVEN: Identical inputs, no fees
	// THEN: Annuity and reducing balance produce the same level payment
	// and the same total interest within rounding tolerance.
	annuity := calculate(t, input(loan.MethodAnnuity))
	reducing := calculate(t, input(loan.MethodReducingBalance))

	assert.True(t, annuity.InstallmentAmount.Equal(reducing.InstallmentAmount))
	diff := annuity.TotalInterest.Sub(reducing.TotalInterest).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.25")),
		"annuity and reducing interest should agree within rounding, diff %v", diff)
}

func TestAnnuity_FeesFoldedIntoInstallments(t *testing.T) {
	// Annuity spreads fees across the schedule; reducing keeps them on
	// the first installment. Totals agree either way.
	in := input(loan.MethodAnnuity)
	in.ProcessingFeeAmount = dec("120")

	result := calculate(t, in)

	assert.True(t, result.TotalFees.Equal(dec("120")))
	assert.True(t, result.Installments[0].Fees.Equal(dec("10")),
		"expected 120/12 = 10 fee per installment, got %v", result.Installments[0].Fees)

	reducing := input(loan.MethodReducingBalance)
	reducing.ProcessingFeeAmount = dec("120")
	reducingResult := calculate(t, reducing)
	assert.True(t, reducingResult.Installments[0].Fees.Equal(dec("120")),
		"reducing balance keeps the full fee on installment 1")
	assert.True(t, reducingResult.TotalFees.Equal(result.TotalFees))
}

// =============================================================================
// BALLOON PAYMENT
// =============================================================================

func TestBalloonPayment_LumpSumDueAtMaturity(t *testing.T) {
	in := input(loan.MethodBalloonPayment)
	in.AnnualInterestRate = dec("12")
	in.BalloonAmount = dec("4000")

	result := calculate(t, in)

	last := result.Installments[len(result.Installments)-1]
	assert.True(t, last.Principal.GreaterThanOrEqual(dec("4000")),
		"final installment must carry the balloon lump sum, got %v", last.Principal)

	// Regular installments amortize only the non-balloon portion, so they
	// are well below the full-principal annuity.
	full := input(loan.MethodReducingBalance)
	full.AnnualInterestRate = dec("12")
	fullResult := calculate(t, full)
	assert.True(t, result.InstallmentAmount.LessThan(fullResult.InstallmentAmount))

	assertScheduleInvariants(t, in, result)
}

func TestBalloonPayment_InterestChargedOnFullBalance(t *testing.T) {
	in := input(loan.MethodBalloonPayment)
	in.AnnualInterestRate = dec("12")
	in.BalloonAmount = dec("4000")

	result := calculate(t, in)

	// First period: 10,000 x 1% = 100, balloon included.
	assert.True(t, result.Installments[0].Interest.Equal(dec("100")),
		"expected 100 first-period interest, got %v", result.Installments[0].Interest)
}

// =============================================================================
// CUSTOM FORMULA
// =============================================================================

func TestCustomFormula_DelegatesToInjectedAmortizer(t *testing.T) {
	// GIVEN: An amortizer that front-loads 60% of the principal
	in := input(loan.MethodCustomFormula)
	in.TermInMonths = 2
	in.Amortizer = func(in loan.CalculationInput) ([]loan.Installment, error) {
		return []loan.Installment{
			{Principal: dec("6000"), Interest: dec("80")},
			{Principal: dec("4000"), Interest: dec("40")},
		}, nil
	}

	result := calculate(t, in)

	require.Len(t, result.Installments, 2)
	assert.True(t, result.TotalInterest.Equal(dec("120")))
	assert.False(t, result.Installments[0].DueDate.IsZero(), "missing due dates are filled in")
	assertScheduleInvariants(t, in, result)
}

func TestCustomFormula_NormalizesPrincipalResidue(t *testing.T) {
	// An amortizer that does not account for every cent still yields a
	// schedule honoring the zero-residual invariant.
	in := input(loan.MethodCustomFormula)
	in.TermInMonths = 3
	in.Amortizer = func(in loan.CalculationInput) ([]loan.Installment, error) {
		third := dec("3333.33")
		return []loan.Installment{
			{Principal: third}, {Principal: third}, {Principal: third},
		}, nil
	}

	result := calculate(t, in)
	assertScheduleInvariants(t, in, result)
}

func TestCustomFormula_ErrorsAreWrappedNotSwallowed(t *testing.T) {
	in := input(loan.MethodCustomFormula)
	in.Amortizer = func(in loan.CalculationInput) ([]loan.Installment, error) {
		return nil, errors.New("division by zero in formula")
	}

	_, err := strategy.Calculate(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, loan.ErrFormulaEvaluation)
	assert.Contains(t, err.Error(), string(loan.MethodCustomFormula))
}

// =============================================================================
// DISPATCH AND SHARED BEHAVIOR
// =============================================================================

func TestForMethod_CoversEveryMethod(t *testing.T) {
	cfg := loan.DefaultConfig()
	for _, m := range loan.Methods() {
		s, err := strategy.ForMethod(m, cfg)
		require.NoError(t, err, "method %s", m)
		assert.Equal(t, m, s.Method())
	}
}

func TestForMethod_RejectsUnknownMethod(t *testing.T) {
	_, err := strategy.ForMethod("rule_of_78", loan.DefaultConfig())
	assert.ErrorIs(t, err, loan.ErrUnsupportedMethod)
}

func TestCalculate_RejectsInvalidInputWithoutPartialResult(t *testing.T) {
	in := input(loan.MethodReducingBalance)
	in.PrincipalAmount = decimal.Zero

	result, err := strategy.Calculate(in)
	assert.Nil(t, result, "no partial result on invalid input")
	assert.ErrorIs(t, err, loan.ErrInvalidPrincipal)
}

func TestCalculate_IsDeterministic(t *testing.T) {
	// Identical inputs must always produce identical outputs.
	first := calculate(t, input(loan.MethodReducingBalance))
	second := calculate(t, input(loan.MethodReducingBalance))

	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	require.Equal(t, len(first.Installments), len(second.Installments))
	for i := range first.Installments {
		assert.True(t, first.Installments[i].TotalDue.Equal(second.Installments[i].TotalDue))
	}
}

func TestCalculate_WeeklyFrequencyScalesInstallments(t *testing.T) {
	in := input(loan.MethodReducingBalance)
	in.RepaymentFrequency = loan.FrequencyWeekly

	result := calculate(t, in)
	assert.Equal(t, 52, result.Summary.InstallmentCount)
	assertScheduleInvariants(t, in, result)
}

func TestCalculate_GraceShiftsFirstDueDate(t *testing.T) {
	in := input(loan.MethodReducingBalance)
	in.GracePeriodDays = 10

	result := calculate(t, in)
	want := disbursement.AddDate(0, 0, 10).AddDate(0, 1, 0)
	assert.True(t, result.Installments[0].DueDate.Equal(want),
		"expected %s, got %s", want, result.Installments[0].DueDate)
}

func TestCalculate_APRIncludesFees(t *testing.T) {
	plain := calculate(t, input(loan.MethodReducingBalance))

	withFees := input(loan.MethodReducingBalance)
	withFees.ProcessingFeePercentage = dec("2")
	feeResult := calculate(t, withFees)

	assert.True(t, feeResult.APR.GreaterThan(plain.APR),
		"fees must raise the APR: %v vs %v", feeResult.APR, plain.APR)
	assert.True(t, feeResult.TotalFees.Equal(dec("200")))
}
