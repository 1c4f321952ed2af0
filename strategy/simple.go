/*
simple.go - Simple-interest strategy

Interest accrues linearly on the original principal for the full term,
measured over the ACTUAL day count of the schedule under the configured
day-count basis (unlike flat rate, which uses the nominal term in years).
The allocation across installments is even; the time-based accrual is
what makes early settlement rebate interest proportionally to elapsed
time rather than to a fixed schedule.
*/
package strategy

import (
	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

type simpleInterest struct {
	base
}

func (s *simpleInterest) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	// Interest = P x r x t, with t the actual year fraction from
	// disbursement to the final due date.
	years := fincalc.DayCountFraction(in.StartDate(), p.dates[p.n-1], in.Basis())
	totalInterest := s.cfg.Round(
		in.PrincipalAmount.Mul(in.AnnualInterestRate).Div(hundred).Mul(years))

	rows := s.evenRows(in, p, totalInterest, s.feesUpfront(in, p.n))

	installment := s.cfg.Round(
		in.PrincipalAmount.Add(totalInterest).Div(decimalFromInt(p.n)))

	return s.buildResult(in, p, rows, installment)
}
