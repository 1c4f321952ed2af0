/*
Package settlement derives payoff and restructuring figures from an
already-computed schedule.

PURPOSE:
  Early settlement answers "what does it cost to pay this loan off today?"
  Restructuring answers "what does the loan look like with a new term,
  rate, frequency, or extra principal?" Both are recomputed from canonical
  inputs on every call; nothing is patched incrementally.

REBATE POLICY (settlement.go):
  For each installment not yet due at the settlement date, the unearned
  fraction of its interest is days(settlement -> due) / period length,
  clamped to [0, 1] and capped by Config.RebateCap (default 50%). The cap
  is configuration, not a constant: it is part of the public contract.

KEY PROPERTY:
  Settling on the final due date yields a zero rebate and a settlement
  amount equal to the last installment's remaining components.

SEE ALSO:
  - restructure.go: New-schedule derivation
  - loan/config.go: RebateCap
*/
package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

// Calculator derives settlement and restructure quotes under a fixed
// numeric policy.
type Calculator struct {
	cfg loan.Config
}

// NewCalculator creates a settlement calculator with the given policy.
func NewCalculator(cfg loan.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// EarlySettlement computes a payoff quote from the original schedule, the
// settlement date, and the count of installments already paid.
func (c *Calculator) EarlySettlement(original *loan.CalculationResult, settlementDate time.Time, paymentsMade int) (*loan.SettlementResult, error) {
	return c.EarlySettlementWithPenalty(original, settlementDate, paymentsMade, decimal.Zero)
}

// EarlySettlementWithPenalty is EarlySettlement with an outstanding
// penalty balance folded into the total. The penalty itself comes from
// the penalty calculator; this package only nets it in.
func (c *Calculator) EarlySettlementWithPenalty(original *loan.CalculationResult, settlementDate time.Time, paymentsMade int, penaltyDue decimal.Decimal) (*loan.SettlementResult, error) {
	if original == nil || len(original.Installments) == 0 {
		return nil, &loan.InputError{Field: "originalResult", Reason: "empty schedule", Err: loan.ErrScheduleExhausted}
	}
	if paymentsMade < 0 || paymentsMade > len(original.Installments) {
		return nil, &loan.InputError{Field: "paymentsMade", Reason: "outside schedule bounds", Err: loan.ErrScheduleExhausted}
	}

	remaining := original.Installments[paymentsMade:]

	var (
		remainingPrincipal = decimal.Zero
		remainingInterest  = decimal.Zero
		remainingScheduled = decimal.Zero
		rebate             = decimal.Zero
	)

	for i, inst := range remaining {
		remainingPrincipal = remainingPrincipal.Add(inst.Principal)
		remainingInterest = remainingInterest.Add(inst.Interest)
		remainingScheduled = remainingScheduled.Add(inst.TotalDue)

		daysUntil := fincalc.DaysBetween(settlementDate, inst.DueDate)
		if daysUntil <= 0 {
			continue // already due, fully earned
		}

		periodDays := c.periodLength(original.Installments, paymentsMade+i)
		fraction := decimal.NewFromInt(int64(daysUntil)).Div(decimal.NewFromInt(int64(periodDays)))
		if fraction.GreaterThan(decimal.NewFromInt(1)) {
			fraction = decimal.NewFromInt(1)
		}
		if fraction.GreaterThan(c.cfg.RebateCap) {
			fraction = c.cfg.RebateCap
		}
		rebate = rebate.Add(inst.Interest.Mul(fraction))
	}

	rebate = c.cfg.Round(rebate)
	total := c.cfg.Round(remainingPrincipal.Add(remainingInterest).Sub(rebate).Add(penaltyDue))

	return &loan.SettlementResult{
		SettlementDate:        settlementDate,
		RemainingPrincipal:    remainingPrincipal,
		RemainingInterest:     remainingInterest,
		InterestRebate:        rebate,
		PenaltyDue:            penaltyDue,
		TotalSettlementAmount: total,
		Savings:               c.cfg.Round(remainingScheduled.Sub(total)),
	}, nil
}

// periodLength returns the installment's period in days. The first
// installment has no predecessor, so its length is taken from the gap to
// the next installment (or the full window to its due date for a
// single-installment schedule).
func (c *Calculator) periodLength(installments []loan.Installment, idx int) int {
	var days int
	switch {
	case idx > 0:
		days = fincalc.DaysBetween(installments[idx-1].DueDate, installments[idx].DueDate)
	case len(installments) > 1:
		days = fincalc.DaysBetween(installments[0].DueDate, installments[1].DueDate)
	default:
		days = 30
	}
	if days < 1 {
		days = 1
	}
	return days
}
