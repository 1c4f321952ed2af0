/*
dates.go - Repayment-period date arithmetic

PURPOSE:
  Steps a disbursement date forward by whole repayment periods to produce
  installment due dates. Month-shaped frequencies step by calendar months
  (so the 31st clamps naturally per time.AddDate); day-shaped frequencies
  step by fixed day counts.
*/
package fincalc

import (
	"time"

	"github.com/warp/loan-engine/loan"
)

// StepDueDate returns the due date k periods after start.
func StepDueDate(start time.Time, f loan.Frequency, k int) time.Time {
	switch f {
	case loan.FrequencyDaily:
		return start.AddDate(0, 0, k)
	case loan.FrequencyWeekly:
		return start.AddDate(0, 0, 7*k)
	case loan.FrequencyBiweekly:
		return start.AddDate(0, 0, 14*k)
	case loan.FrequencyMonthly:
		return start.AddDate(0, k, 0)
	case loan.FrequencyQuarterly:
		return start.AddDate(0, 3*k, 0)
	case loan.FrequencySemiAnnual:
		return start.AddDate(0, 6*k, 0)
	case loan.FrequencyAnnual:
		return start.AddDate(k, 0, 0)
	default:
		return start
	}
}

// DueDates builds the n installment due dates for an input: disbursement
// date + period * frequency step, with the grace-period offset applied to
// installment 1 and carried through the rest of the schedule.
func DueDates(in loan.CalculationInput, n int) []time.Time {
	start := in.StartDate()
	if in.GracePeriodDays > 0 {
		start = start.AddDate(0, 0, in.GracePeriodDays)
	}
	dates := make([]time.Time, n)
	for k := 1; k <= n; k++ {
		dates[k-1] = StepDueDate(start, in.RepaymentFrequency, k)
	}
	return dates
}
