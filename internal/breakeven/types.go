package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SweepOptions defines the revenue range evaluated by a sweep
type SweepOptions struct {
	From decimal.Decimal `json:"from"`
	To   decimal.Decimal `json:"to"`
	Step decimal.Decimal `json:"step"`
}

// DefaultSweepOptions returns the range used by the chart: 30k to 300k in 5k steps
func DefaultSweepOptions() SweepOptions {
	return SweepOptions{
		From: decimal.NewFromInt(30000),
		To:   decimal.NewFromInt(300000),
		Step: decimal.NewFromInt(5000),
	}
}

// Points returns the number of revenue levels the range covers. Ranges larger
// than MaxSweepPoints report MaxSweepPoints+1.
func (o SweepOptions) Points() int {
	count, ok := o.count()
	if !ok {
		return 0
	}
	if count.GreaterThan(decimal.NewFromInt(MaxSweepPoints)) {
		return MaxSweepPoints + 1
	}
	return int(count.IntPart())
}

// count is computed in decimal so huge ranges cannot overflow an int
func (o SweepOptions) count() (decimal.Decimal, bool) {
	if !o.Step.IsPositive() || o.To.LessThan(o.From) {
		return decimal.Zero, false
	}
	return o.To.Sub(o.From).Div(o.Step).Floor().Add(decimal.NewFromInt(1)), true
}

// Validate checks if the sweep range is internally consistent
func (o SweepOptions) Validate() error {
	if o.From.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_sweep",
			Message:   fmt.Sprintf("from cannot be negative, got %s", o.From.String()),
		}
	}
	if o.To.LessThan(o.From) {
		return &BreakEvenError{
			Operation: "validate_sweep",
			Message:   fmt.Sprintf("to (%s) cannot be below from (%s)", o.To.String(), o.From.String()),
		}
	}
	if !o.Step.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_sweep",
			Message:   "step must be positive",
		}
	}
	if count, _ := o.count(); count.GreaterThan(decimal.NewFromInt(MaxSweepPoints)) {
		return &BreakEvenError{
			Operation: "validate_sweep",
			Message:   fmt.Sprintf("range produces %s points, limit is %d", count.String(), MaxSweepPoints),
		}
	}
	return nil
}

// MaxSweepPoints bounds the work a single sweep may request
const MaxSweepPoints = 10000

// SolverOptions configures the crossover bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // Stop once the revenue bracket is narrower than this
	MaxIterations int             // Maximum bisection steps per crossover
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // €1 of revenue
		MaxIterations: 50,
	}
}

// BreakEvenError represents errors from the sweep and crossover solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
