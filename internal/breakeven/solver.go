package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/shopspring/decimal"
)

// Solver finds the gross income that reaches a tax outcome. Money kept, total
// tax and the effective rate never decrease as income grows, so a bisection
// over whole cents finds the smallest qualifying income.
type Solver struct {
	Calculator *calculation.BracketTaxCalculator
	Options    SolverOptions
}

// NewSolver creates a new income solver
func NewSolver(calc *calculation.BracketTaxCalculator, options SolverOptions) *Solver {
	return &Solver{
		Calculator: calc,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc *calculation.BracketTaxCalculator) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// Solve runs the bisection for one request
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	reaches := func(cents int64) bool {
		report := s.Calculator.Calculate(decimal.New(cents, -2))
		return req.Goal.Measure(report).GreaterThanOrEqual(req.Target)
	}

	low := int64(0)
	high := s.Options.UpperBound.Shift(2).IntPart()

	if reaches(low) {
		return s.result(req, low, 0, "Target reached at zero income"), nil
	}
	if !reaches(high) {
		return nil, &SolverError{
			Operation: "solve_" + string(req.Goal),
			Message:   fmt.Sprintf("target %s is not reachable below %s", req.Target.String(), s.Options.UpperBound.String()),
		}
	}

	// Invariant: low misses the target, high reaches it
	iterations := 0
	for high-low > 1 {
		if iterations >= req.MaxIterations {
			result := s.result(req, high, iterations, fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations))
			result.Success = false
			return result, nil
		}
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, &SolverError{
				Operation: "solve_" + string(req.Goal),
				Message:   "cancelled",
				Cause:     ctx.Err(),
			}
		default:
		}

		mid := low + (high-low)/2
		if reaches(mid) {
			high = mid
		} else {
			low = mid
		}
	}

	return s.result(req, high, iterations, "Converged to the nearest cent"), nil
}

func (s *Solver) result(req SolveRequest, cents int64, iterations int, info string) *SolveResult {
	income := decimal.New(cents, -2)
	report := s.Calculator.Calculate(income)
	return &SolveResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: info,
		Income:          income,
		Achieved:        req.Goal.Measure(report),
		Report:          &report,
	}
}
