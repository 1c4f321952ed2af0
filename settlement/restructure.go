/*
restructure.go - New-schedule derivation for loan restructuring

PURPOSE:
  Builds a brand-new CalculationInput from the original loan plus the
  requested changes, recomputes a full schedule through an injected
  ScheduleFunc, and reports the delta against the original. The original
  schedule is never patched.

MORATORIUM POLICY:
  Each moratorium month defers principal; interest accrues at the monthly
  periodic rate and is capitalized into the principal when the moratorium
  ends. Amortization (and the first due date) start after the moratorium.

DELTAS:
  restructure cost   = total fees of the new schedule (incl. the
                       restructure fee, which is folded into the input)
  total savings      = remaining interest on the old schedule minus the
                       new schedule's total interest
  extension months   = (new term + moratorium) - remaining original term
*/
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

// ScheduleFunc computes a full schedule for an input. Injecting it keeps
// this package independent of the strategy dispatch.
type ScheduleFunc func(loan.CalculationInput) (*loan.CalculationResult, error)

// Restructure recomputes the loan under the requested changes.
func (c *Calculator) Restructure(originalInput loan.CalculationInput, original *loan.CalculationResult, paymentsMade int, req loan.RestructureRequest, build ScheduleFunc) (*loan.RestructureResult, error) {
	if original == nil || len(original.Installments) == 0 {
		return nil, &loan.InputError{Field: "originalResult", Reason: "empty schedule", Err: loan.ErrScheduleExhausted}
	}
	if paymentsMade < 0 || paymentsMade >= len(original.Installments) {
		return nil, &loan.InputError{Field: "paymentsMade", Reason: "nothing left to restructure", Err: loan.ErrScheduleExhausted}
	}

	// Outstanding principal at the restructure point.
	outstanding := original.Principal
	if paymentsMade > 0 {
		outstanding = original.Installments[paymentsMade-1].RemainingBalance
	}
	newPrincipal := outstanding.Add(req.AdditionalPrincipal)

	newRate := originalInput.AnnualInterestRate
	if req.NewAnnualRate != nil {
		newRate = *req.NewAnnualRate
	}
	newFrequency := originalInput.RepaymentFrequency
	if req.NewFrequency != "" {
		newFrequency = req.NewFrequency
	}
	newMethod := originalInput.CalculationMethod
	if req.NewMethod != "" {
		newMethod = req.NewMethod
	}

	elapsed, err := elapsedMonths(paymentsMade, originalInput.RepaymentFrequency)
	if err != nil {
		return nil, err
	}
	remainingTerm := originalInput.TermInMonths - elapsed
	if remainingTerm < 1 {
		remainingTerm = 1
	}
	newTerm := remainingTerm
	if req.NewTermInMonths > 0 {
		newTerm = req.NewTermInMonths
	}

	// The new schedule starts where the old one left off.
	start := originalInput.StartDate()
	if paymentsMade > 0 {
		start = original.Installments[paymentsMade-1].DueDate
	}

	if req.MoratoriumMonths > 0 {
		monthlyRate := newRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
		newPrincipal = c.cfg.Round(fincalc.CompoundAmount(newPrincipal, monthlyRate, req.MoratoriumMonths))
		start = start.AddDate(0, req.MoratoriumMonths, 0)
	}

	newInput := loan.CalculationInput{
		PrincipalAmount:     newPrincipal,
		AnnualInterestRate:  newRate,
		TermInMonths:        newTerm,
		RepaymentFrequency:  newFrequency,
		CalculationMethod:   newMethod,
		ProcessingFeeAmount: req.RestructureFee,
		PenaltyRate:         originalInput.PenaltyRate,
		PenaltyType:         originalInput.PenaltyType,
		InterestBasis:       originalInput.InterestBasis,
		BalloonAmount:       originalInput.BalloonAmount,
		Amortizer:           originalInput.Amortizer,
		DisbursementDate:    start,
	}

	restructured, err := build(newInput)
	if err != nil {
		return nil, err
	}

	oldRemainingInterest := decimal.Zero
	for _, inst := range original.Installments[paymentsMade:] {
		oldRemainingInterest = oldRemainingInterest.Add(inst.Interest)
	}

	return &loan.RestructureResult{
		OriginalLoan:         original,
		RestructuredLoan:     restructured,
		RestructureCost:      restructured.TotalFees,
		TotalSavings:         c.cfg.Round(oldRemainingInterest.Sub(restructured.TotalInterest)),
		NewInstallmentAmount: restructured.InstallmentAmount,
		ExtensionMonths:      newTerm + req.MoratoriumMonths - remainingTerm,
	}, nil
}

// elapsedMonths converts paid installments back into whole months of the
// original term (rounded to nearest).
func elapsedMonths(paymentsMade int, f loan.Frequency) (int, error) {
	ppy, err := fincalc.PeriodsPerYear(f)
	if err != nil {
		return 0, err
	}
	months := decimal.NewFromInt(int64(paymentsMade)).Mul(decimal.NewFromInt(12)).Div(ppy).Round(0)
	return int(months.IntPart()), nil
}
