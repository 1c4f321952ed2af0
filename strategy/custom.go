/*
custom.go - Custom-formula strategy

The amortization itself is delegated to a caller-supplied amortizer (an
injected function value, NOT a textual formula this engine parses). The
strategy contract is retained: whatever the amortizer returns is
normalized into a full CalculationResult - renumbered, cumulative totals
recomputed, due dates filled in where missing, and the final installment
adjusted so the schedule invariants hold. Amortizer errors are wrapped
with ErrFormulaEvaluation and never swallowed.
*/
package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/loan"
)

type customFormula struct {
	base
}

func (s *customFormula) CalculateLoan(in loan.CalculationInput) (*loan.CalculationResult, error) {
	p, err := s.prepare(in)
	if err != nil {
		return nil, err
	}

	raw, err := in.Amortizer(in)
	if err != nil {
		return nil, &loan.ComputationError{
			Method: s.method,
			Detail: "amortizer returned an error",
			Err:    fmt.Errorf("%w: %w", loan.ErrFormulaEvaluation, err),
		}
	}
	if len(raw) == 0 {
		return nil, &loan.ComputationError{
			Method: s.method,
			Detail: "amortizer returned no installments",
			Err:    loan.ErrFormulaEvaluation,
		}
	}

	rows := s.normalize(in, p, raw)
	return s.buildResult(in, p, rows, rows[0].TotalDue)
}

// normalize re-derives everything the result contract requires from the
// amortizer's rows: contiguous numbering, cumulative totals, remaining
// balances, and the zero-residual invariant (any principal shortfall or
// excess is absorbed into the final installment).
func (s *customFormula) normalize(in loan.CalculationInput, p prepared, raw []loan.Installment) []loan.Installment {
	rows := make([]loan.Installment, len(raw))
	copy(rows, raw)

	// Force the final principal to close the balance exactly.
	sumBefore := decimal.Zero
	for _, r := range rows[:len(rows)-1] {
		sumBefore = sumBefore.Add(r.Principal)
	}
	rows[len(rows)-1].Principal = in.PrincipalAmount.Sub(sumBefore)

	cumP, cumI := decimal.Zero, decimal.Zero
	for i := range rows {
		rows[i].Number = i + 1
		if rows[i].DueDate.IsZero() && i < len(p.dates) {
			rows[i].DueDate = p.dates[i]
		}
		cumP = cumP.Add(rows[i].Principal)
		cumI = cumI.Add(rows[i].Interest)
		rows[i].CumulativePrincipal = cumP
		rows[i].CumulativeInterest = cumI
		rows[i].RemainingBalance = in.PrincipalAmount.Sub(cumP)
		rows[i].TotalDue = rows[i].Principal.Add(rows[i].Interest).Add(rows[i].Fees)
	}
	return rows
}
