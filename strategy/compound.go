/*
compound.go - Compound-interest strategy

The balance compounds each period at the periodic rate before payment is
subtracted, so the total repayable is P x (1+r)^n. This method is used
chiefly for total-amount calculation; the installment-level breakdown is
an even split of that compound total. A single-period term degenerates to
principal plus one period of interest with no compounding.
*/
package strategy

import (
	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

type compoundInterest struct {
	base
}

func (s *compoundInterest) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	totalInterest := s.cfg.Round(fincalc.CompoundInterest(in.PrincipalAmount, p.rate, p.n))

	rows := s.evenRows(in, p, totalInterest, s.feesUpfront(in, p.n))

	installment := s.cfg.Round(
		in.PrincipalAmount.Add(totalInterest).Div(decimalFromInt(p.n)))

	return s.buildResult(in, p, rows, installment)
}
