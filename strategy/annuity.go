/*
annuity.go - Annuity strategy

Mathematically the same core as reducing balance: the level payment is
solved from the present-value-of-annuity formula. The differences are
presentation policy: the level installment is rounded to currency scale
up front (so every regular payment is a clean figure), and fees are
folded evenly into the installments rather than kept on the first one.
*/
package strategy

import (
	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

type annuity struct {
	base
}

func (s *annuity) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	payment, err := fincalc.AnnuityPayment(in.PrincipalAmount, p.rate, p.n)
	if err != nil {
		return nil, &loan.ComputationError{Method: s.method, Detail: "level installment", Err: err}
	}
	payment = s.cfg.Round(payment)

	rows := s.amortizingRows(in, p, payment, s.feesSpread(in, p.n))
	return s.buildResult(in, p, rows, payment)
}
