/*
schedule.go - Shared schedule-generation skeleton

PURPOSE:
  The parts of schedule generation every method shares: installment
  counting, due dates, fee allocation, even principal/interest splitting,
  and result assembly (totals, summary, effective rate, APR).

ROUNDING POLICY (binding, part of the public contract):
  Every monetary component is rounded to Config.Scale as it is produced.
  The rounding residue is always absorbed into the FINAL installment's
  components, never distributed. This guarantees that the sum of principal
  components equals the input principal exactly and that the remaining
  balance after the last installment is exactly zero, at the cost of a
  slightly uneven last payment.

APR:
  A documented approximation, not an IRR solve: the total interest plus
  total fees, expressed as a simple annualized percentage of principal
  over the term in years.
*/
package strategy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/loan-engine/fincalc"
	"github.com/warp/loan-engine/loan"
)

var hundred = decimal.NewFromInt(100)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// prepared bundles the values every schedule loop needs.
type prepared struct {
	n     int
	rate  decimal.Decimal // periodic rate, fractional
	dates []time.Time
}

// prepare validates the input and derives period count, periodic rate,
// and due dates. No computation starts on invalid input.
func (b *base) prepare(in loan.CalculationInput) (prepared, error) {
	if err := in.Validate(); err != nil {
		return prepared{}, err
	}
	n, err := fincalc.InstallmentCount(in.TermInMonths, in.RepaymentFrequency)
	if err != nil {
		return prepared{}, err
	}
	rate, err := fincalc.PeriodicRate(in.AnnualInterestRate, in.RepaymentFrequency, in.Basis())
	if err != nil {
		return prepared{}, err
	}
	return prepared{n: n, rate: rate, dates: fincalc.DueDates(in, n)}, nil
}

// feesUpfront puts the full fee load on the first installment. Used by
// every method except annuity.
func (b *base) feesUpfront(in loan.CalculationInput, n int) []decimal.Decimal {
	fees := make([]decimal.Decimal, n)
	for i := range fees {
		fees[i] = decimal.Zero
	}
	fees[0] = in.UpfrontFees(b.cfg)
	return fees
}

// feesSpread folds the fee load evenly into every installment, residue in
// the last. Used by the annuity method.
func (b *base) feesSpread(in loan.CalculationInput, n int) []decimal.Decimal {
	total := in.UpfrontFees(b.cfg)
	per := b.cfg.Round(total.Div(decimal.NewFromInt(int64(n))))
	fees := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		fees[i] = per
		allocated = allocated.Add(per)
	}
	fees[n-1] = total.Sub(allocated)
	return fees
}

// evenRows splits principal and the given total interest evenly across n
// installments with a linearly declining balance. The final row absorbs
// both residues. Shared by the flat-rate, simple-interest, and
// compound-interest methods.
func (b *base) evenRows(in loan.CalculationInput, p prepared, totalInterest decimal.Decimal, fees []decimal.Decimal) []loan.Installment {
	principal := in.PrincipalAmount
	nDec := decimal.NewFromInt(int64(p.n))
	perPrincipal := b.cfg.Round(principal.Div(nDec))
	perInterest := b.cfg.Round(totalInterest.Div(nDec))

	rows := make([]loan.Installment, 0, p.n)
	cumP, cumI := decimal.Zero, decimal.Zero
	for i := 1; i <= p.n; i++ {
		pc, ic := perPrincipal, perInterest
		if i == p.n {
			pc = principal.Sub(cumP) // absorb residue
			ic = totalInterest.Sub(cumI)
		}
		cumP = cumP.Add(pc)
		cumI = cumI.Add(ic)
		fee := fees[i-1]
		rows = append(rows, loan.Installment{
			Number:              i,
			DueDate:             p.dates[i-1],
			Principal:           pc,
			Interest:            ic,
			Fees:                fee,
			TotalDue:            pc.Add(ic).Add(fee),
			RemainingBalance:    principal.Sub(cumP),
			CumulativePrincipal: cumP,
			CumulativeInterest:  cumI,
		})
	}
	return rows
}

// amortizingRows walks the declining balance: each period charges
// interest on the outstanding principal and repays the rest of the level
// payment. The final period's principal exactly zeroes the balance.
// Shared by the reducing-balance and annuity methods.
func (b *base) amortizingRows(in loan.CalculationInput, p prepared, payment decimal.Decimal, fees []decimal.Decimal) []loan.Installment {
	remaining := in.PrincipalAmount
	rows := make([]loan.Installment, 0, p.n)
	cumP, cumI := decimal.Zero, decimal.Zero
	for i := 1; i <= p.n; i++ {
		interest := b.cfg.Round(remaining.Mul(p.rate))
		var principal decimal.Decimal
		if i == p.n {
			principal = remaining // absorb residue
		} else {
			principal = b.cfg.Round(payment.Sub(interest))
		}
		remaining = remaining.Sub(principal)
		cumP = cumP.Add(principal)
		cumI = cumI.Add(interest)
		fee := fees[i-1]
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
	return rows
}

// buildResult assembles totals, summary, effective rate, and APR from the
// finished rows.
func (b *base) buildResult(in loan.CalculationInput, p prepared, rows []loan.Installment, installmentAmount decimal.Decimal) (*loan.CalculationResult, error) {
	totalInterest, totalFees, totalAmount := decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range rows {
		totalInterest = totalInterest.Add(r.Interest)
		totalFees = totalFees.Add(r.Fees)
		totalAmount = totalAmount.Add(r.TotalDue)
	}

	effective, err := fincalc.EffectiveAnnualRate(p.rate, in.RepaymentFrequency)
	if err != nil {
		return nil, err
	}

	// Annualized (interest + fees) / principal over the term in years.
	apr := totalInterest.Add(totalFees).
		Div(in.PrincipalAmount).
		Div(in.TermInYears()).
		Mul(hundred)

	n := len(rows)
	return &loan.CalculationResult{
		Method:            b.method,
		Principal:         in.PrincipalAmount,
		TotalInterest:     totalInterest,
		TotalFees:         totalFees,
		TotalAmount:       totalAmount,
		InstallmentAmount: installmentAmount,
		EffectiveRate:     b.cfg.RoundRate(effective),
		APR:               b.cfg.RoundRate(apr),
		Installments:      rows,
		Summary: loan.Summary{
			InstallmentCount: n,
			FirstDueDate:     rows[0].DueDate,
			LastDueDate:      rows[n-1].DueDate,
			TotalPrincipal:   in.PrincipalAmount,
			TotalInterest:    totalInterest,
			TotalFees:        totalFees,
			TotalAmount:      totalAmount,
			AveragePayment:   b.cfg.Round(totalAmount.Div(decimal.NewFromInt(int64(n)))),
		},
	}, nil
}
