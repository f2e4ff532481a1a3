package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxview/internal/output"
)

// SolveLadder solves one goal for each target and notes how the required
// income grows between consecutive targets
func (s *Solver) SolveLadder(ctx context.Context, req SolveRequest, ladder []SolveRequest) (*MultiSolveResult, error) {
	requests := append([]SolveRequest{req}, ladder...)

	var results []SolveResult
	for _, r := range requests {
		if r.Goal == "" {
			r.Goal = req.Goal
		}
		if r.Goal != req.Goal {
			return nil, &SolverError{
				Operation: "solve_ladder",
				Message:   fmt.Sprintf("mixed goals %s and %s", req.Goal, r.Goal),
			}
		}

		result, err := s.Solve(ctx, r)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	multi := &MultiSolveResult{
		Goal:    req.Goal,
		Results: results,
	}
	multi.Notes = ladderNotes(multi)

	return multi, nil
}

func ladderNotes(multi *MultiSolveResult) []string {
	notes := []string{}
	if multi.Goal != GoalTakeHome {
		return notes
	}

	for i := 1; i < len(multi.Results); i++ {
		prev, cur := multi.Results[i-1], multi.Results[i]
		extraKept := cur.Achieved.Sub(prev.Achieved)
		extraIncome := cur.Income.Sub(prev.Income)
		if !extraKept.IsPositive() {
			continue
		}
		notes = append(notes, fmt.Sprintf("Keeping %s more takes %s more gross income",
			output.FormatCurrency(extraKept), output.FormatCurrency(extraIncome)))
	}
	return notes
}
