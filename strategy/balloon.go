/*
balloon.go - Balloon-payment strategy

Regular installments amortize only the portion of principal not covered
by the balloon; the balloon amount stays outstanding for the whole term
and falls due as a lump principal component on the final installment.
Interest each period is charged on the FULL outstanding balance, balloon
included, so the regular payment is the annuity on the amortizing portion
plus the interest carried by the balloon.
*/
package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

type balloonPayment struct {
	base
}

func (s *balloonPayment) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	balloon := in.BalloonAmount
	amortizing := in.PrincipalAmount.Sub(balloon)

	payment, err := fincalc.AnnuityPayment(amortizing, p.rate, p.n)
	if err != nil {
		return nil, &loan.ComputationError{Method: s.method, Detail: "level installment", Err: err}
	}

	fees := s.feesUpfront(in, p.n)
	rows := make([]loan.Installment, 0, p.n)
	remA := amortizing // amortizing portion outstanding
	cumP, cumI := decimal.Zero, decimal.Zero

	for i := 1; i <= p.n; i++ {
		// Interest on the full balance, balloon included.
		interest := s.cfg.Round(remA.Add(balloon).Mul(p.rate))

		var principal decimal.Decimal
		if i == p.n {
			principal = remA.Add(balloon) // residue + balloon lump sum
			remA = decimal.Zero
		} else {
			principal = s.cfg.Round(payment.Sub(remA.Mul(p.rate)))
			remA = remA.Sub(principal)
		}

		cumP = cumP.Add(principal)
		cumI = cumI.Add(interest)
		fee := fees[i-1]
		remaining := remA
		if i < p.n {
			remaining = remA.Add(balloon)
		}
		rows = append(rows, loan.Installment{
			Number:              i,
			DueDate:             p.dates[i-1],
			Principal:           principal,
			Interest:            interest,
			Fees:                fee,
			TotalDue:            principal.Add(interest).Add(fee),
			RemainingBalance:    remaining,
			CumulativePrincipal: cumP,
			CumulativeInterest:  cumI,
		})
	}

	// The regular payment carries the annuity plus the balloon's interest.
	regular := s.cfg.Round(payment.Add(balloon.Mul(p.rate)))
	return s.buildResult(in, p, rows, regular)
}
