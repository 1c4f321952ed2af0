/*
config.go - Numeric policy shared by every calculation component

PURPOSE:
  Bundles the rounding and policy constants that were implicit in earlier
  systems into one explicit, immutable value. Results are deterministic
  regardless of calling context because every component receives the same
  Config value instead of consulting mutable globals.

POLICY CONSTANTS:
  Scale:           Monetary precision (2 = cents)
  RebateCap:       Maximum fraction of a not-yet-due installment's interest
                   that can be rebated on early settlement (default 0.50)
  PenaltyDayBasis: Days-per-year denominator for day-prorated penalties

ROUNDING:
  Banker's rounding (round half to even) at Scale digits. The final
  installment of every schedule absorbs the rounding residue, which is what
  guarantees the zero-residual invariant.
*/
package loan

import "github.com/shopspring/decimal"

// Config is the immutable numeric policy for a set of calculations.
type Config struct {
	// Scale is the number of decimal places for monetary amounts.
	Scale int32

	// RateScale is the number of decimal places for reported rates.
	RateScale int32

	// RebateCap limits the per-installment interest rebate fraction on
	// early settlement. 0.5 means at most half the scheduled interest of
	// a future installment is rebated.
	RebateCap decimal.Decimal

	// PenaltyDayBasis is the days-per-year denominator used when a
	// penalty rate is prorated per day overdue.
	PenaltyDayBasis int
}

// DefaultConfig returns the standard numeric policy: cents precision,
// banker's rounding, 50% rebate cap, ACT/365 penalty proration.
func DefaultConfig() Config {
	return Config{
		Scale:           2,
		RateScale:       4,
		RebateCap:       decimal.NewFromFloat(0.5),
		PenaltyDayBasis: 365,
	}
}

// Round rounds a monetary amount to the configured scale using banker's
// rounding.
func (c Config) Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(c.Scale)
}

// RoundRate rounds a rate to the configured rate scale.
func (c Config) RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(c.RateScale)
}

// Tolerance is the largest absolute difference treated as "exactly zero"
// when verifying schedule invariants (half of the smallest representable
// unit at Scale).
func (c Config) Tolerance() decimal.Decimal {
	return decimal.New(5, -c.Scale-1)
}
