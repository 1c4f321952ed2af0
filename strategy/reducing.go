/*
reducing.go - Reducing-balance (declining balance) strategy

The level installment is solved once from the annuity-payment formula so
the loan fully amortizes in exactly the scheduled number of periods. Each
period charges interest on the outstanding principal; the principal
component is the level installment minus that interest, clamped in the
final period so the balance lands exactly on zero.

Fees stay a separate component on the first installment (the annuity
method folds them into the level payment instead - that is the only
difference between the two).
*/
package strategy

import (
	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

type reducingBalance struct {
	base
}

func (s *reducingBalance) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	// Internally unrounded; only the per-period components are rounded.
	payment, err := fincalc.AnnuityPayment(in.PrincipalAmount, p.rate, p.n)
	if err != nil {
		return nil, &loan.ComputationError{Method: s.method, Detail: "level installment", Err: err}
	}

	rows := s.amortizingRows(in, p, payment, s.feesUpfront(in, p.n))
	return s.buildResult(in, p, rows, s.cfg.Round(payment))
}
