package breakeven

import (
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveGoal defines which tax outcome the solver should reach
type SolveGoal string

const (
	GoalTakeHome      SolveGoal = "take_home"      // Reach a target amount of money kept
	GoalTotalTax      SolveGoal = "total_tax"      // Reach a target total tax owed
	GoalEffectiveRate SolveGoal = "effective_rate" // Reach a target effective tax rate
)

// Goals lists the supported solve goals in display order
var Goals = []SolveGoal{GoalTakeHome, GoalTotalTax, GoalEffectiveRate}

// SolveRequest defines the parameters for a solve run
type SolveRequest struct {
	Goal          SolveGoal       `json:"goal"`
	Target        decimal.Decimal `json:"target"`
	MaxIterations int             `json:"-"` // Maximum bisection steps
}

// SolveResult is the smallest gross income whose outcome reaches the target
type SolveResult struct {
	Request         SolveRequest `json:"request"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergenceInfo"`

	Income   decimal.Decimal   `json:"income"`
	Achieved decimal.Decimal   `json:"achieved"`
	Report   *domain.TaxReport `json:"-"`
}

// MultiSolveResult holds one result per target of a ladder of targets
type MultiSolveResult struct {
	Goal    SolveGoal     `json:"goal"`
	Results []SolveResult `json:"results"`
	Notes   []string      `json:"notes"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations int             // Maximum iterations
	UpperBound    decimal.Decimal // Largest income searched
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		// Cent resolution over the full income range needs 57 halvings
		MaxIterations: 64,
		UpperBound:    decimal.New(1, 15),
	}
}

// Validate checks that the request names a known goal with a sensible target
func (r *SolveRequest) Validate() error {
	switch r.Goal {
	case GoalTakeHome, GoalTotalTax:
		if r.Target.IsNegative() {
			return &SolverError{
				Operation: "validate_request",
				Message:   "target amount cannot be negative",
			}
		}
	case GoalEffectiveRate:
		if r.Target.IsNegative() || r.Target.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return &SolverError{
				Operation: "validate_request",
				Message:   "target effective rate must be a fraction between 0 and 1",
			}
		}
	default:
		return &SolverError{
			Operation: "validate_request",
			Message:   "unsupported goal: " + string(r.Goal),
		}
	}
	return nil
}

// Measure returns the value a goal tracks for one report
func (g SolveGoal) Measure(report domain.TaxReport) decimal.Decimal {
	switch g {
	case GoalTakeHome:
		return report.MoneyKept()
	case GoalTotalTax:
		return report.TotalTaxOwed
	case GoalEffectiveRate:
		return report.EffectiveTaxRate
	}
	return decimal.Zero
}

// SolverError represents errors from the income solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
