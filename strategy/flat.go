/*
flat.go - Flat-rate strategy

Total interest = principal x annual rate x term in years, charged on the
original principal throughout. Interest and principal are both split
evenly across installments; the remaining balance declines linearly
regardless of actual amortization.
*/
package strategy

import (
	"github.com/warp/loan-engine/loan"
)

type flatRate struct {
	base
}

func (s *flatRate) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	totalInterest := s.cfg.Round(
		in.PrincipalAmount.
			Mul(in.AnnualInterestRate).Div(hundred).
			Mul(in.TermInYears()))

	rows := s.evenRows(in, p, totalInterest, s.feesUpfront(in, p.n))

	installment := s.cfg.Round(
		in.PrincipalAmount.Add(totalInterest).Div(decimalFromInt(p.n)))

	return s.buildResult(in, p, rows, installment)
}
