/*
errors.go - Centralized error taxonomy for the loan engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculation packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Input errors - Invalid input rejected before any computation begins
  2. Computation errors - Degenerate results (e.g. unsolvable annuity)
  3. Formula errors - Failures surfaced by a caller-supplied amortizer

All errors are local to a single calculation call and fully recoverable by
the caller. The engine never retries internally.

USAGE:
  if loan.IsInputError(err) {
      // re-prompt for corrected input
  }
*/
package loan

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPrincipal is returned for a non-positive principal.
	ErrInvalidPrincipal = errors.New("principal must be positive")

	// ErrInvalidRate is returned for a negative annual interest rate.
	ErrInvalidRate = errors.New("interest rate must not be negative")

	// ErrInvalidTerm is returned for a non-positive term.
	ErrInvalidTerm = errors.New("term must be positive")

	// ErrUnsupportedMethod is returned for an unknown calculation method.
	ErrUnsupportedMethod = errors.New("unsupported calculation method")

	// ErrUnsupportedFrequency is returned for an unknown repayment frequency.
	ErrUnsupportedFrequency = errors.New("unsupported repayment frequency")

	// ErrInvalidBalloon is returned when a balloon amount is missing,
	// non-positive, or not smaller than the principal.
	ErrInvalidBalloon = errors.New("balloon amount must be positive and below principal")

	// ErrMissingAmortizer is returned when the custom-formula method is
	// selected without an injected amortizer.
	ErrMissingAmortizer = errors.New("custom formula method requires an amortizer")

	// ErrUnsolvableAnnuity is returned when the rate/term combination
	// produces a degenerate (non-positive) installment. The engine never
	// silently returns zero or negative payments.
	ErrUnsolvableAnnuity = errors.New("annuity payment is not solvable for the given rate and term")

	// ErrFormulaEvaluation wraps any error surfaced by a caller-supplied
	// amortizer. Such errors are reported, never swallowed.
	ErrFormulaEvaluation = errors.New("custom formula evaluation failed")

	// ErrScheduleExhausted is returned when a settlement or restructure
	// refers to more payments than the schedule contains.
	ErrScheduleExhausted = errors.New("payments made exceed schedule length")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError reports which field of a CalculationInput was rejected.
type InputError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

// ComputationError reports a degenerate numeric result with the method
// that produced it.
type ComputationError struct {
	Method Method
	Detail string
	Err    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed for %s: %s", e.Method, e.Detail)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is due to invalid caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidPrincipal) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidTerm) ||
		errors.Is(err, ErrUnsupportedMethod) ||
		errors.Is(err, ErrUnsupportedFrequency) ||
		errors.Is(err, ErrInvalidBalloon) ||
		errors.Is(err, ErrMissingAmortizer) ||
		errors.Is(err, ErrScheduleExhausted)
}

// IsComputationError returns true if the inputs were well-formed but the
// calculation produced a degenerate result.
func IsComputationError(err error) bool {
	return errors.Is(err, ErrUnsolvableAnnuity) ||
		errors.Is(err, ErrFormulaEvaluation)
}
