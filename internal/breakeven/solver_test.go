package breakeven

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver(t *testing.T) *Solver {
	t.Helper()
	calc, err := calculation.NewBracketTaxCalculator(*config.NewTaxFactsParser().Default())
	require.NoError(t, err)
	return NewDefaultSolver(calc)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewDefaultSolver(t *testing.T) {
	solver := newTestSolver(t)
	assert.Equal(t, 64, solver.Options.MaxIterations)
	assert.True(t, solver.Options.UpperBound.Equal(decimal.New(1, 15)))
}

func TestSolve_ReachesFiftyThousand(t *testing.T) {
	tests := []struct {
		name   string
		goal   SolveGoal
		target string
	}{
		{"take-home", GoalTakeHome, "45984"},
		{"total tax", GoalTotalTax, "4016"},
		{"effective rate", GoalEffectiveRate, "0.08032"},
	}

	solver := newTestSolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Solve(context.Background(), SolveRequest{Goal: tt.goal, Target: dec(tt.target)})
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.Equal(t, "50000.00", result.Income.StringFixed(2))
			assert.True(t, result.Achieved.Equal(dec(tt.target)), "achieved %s", result.Achieved)
			require.NotNil(t, result.Report)
			assert.True(t, result.Report.MarginalTaxRate.Equal(dec("0.12")))
			assert.Equal(t, "Converged to the nearest cent", result.ConvergenceInfo)
			assert.Greater(t, result.Iterations, 50)
		})
	}
}

func TestSolve_Boundaries(t *testing.T) {
	solver := newTestSolver(t)

	// Everything up to the deduction is kept
	result, err := solver.Solve(context.Background(), SolveRequest{Goal: GoalTakeHome, Target: dec("14600")})
	require.NoError(t, err)
	assert.Equal(t, "14600.00", result.Income.StringFixed(2))

	// The first dollar of tax needs ten dollars of taxable income
	result, err = solver.Solve(context.Background(), SolveRequest{Goal: GoalTotalTax, Target: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, "14610.00", result.Income.StringFixed(2))
}

func TestSolve_ZeroTarget(t *testing.T) {
	result, err := newTestSolver(t).Solve(context.Background(), SolveRequest{Goal: GoalTakeHome, Target: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, result.Income.IsZero())
	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, "Target reached at zero income", result.ConvergenceInfo)
}

func TestSolve_Unreachable(t *testing.T) {
	solver := newTestSolver(t)

	for _, req := range []SolveRequest{
		{Goal: GoalTakeHome, Target: dec("2000000000000000")},
		{Goal: GoalEffectiveRate, Target: dec("0.5")},
	} {
		_, err := solver.Solve(context.Background(), req)
		var solverErr *SolverError
		require.ErrorAs(t, err, &solverErr)
		assert.Contains(t, solverErr.Message, "not reachable")
	}
}

func TestSolveRequest_Validate(t *testing.T) {
	invalid := []SolveRequest{
		{Goal: GoalTakeHome, Target: dec("-1")},
		{Goal: GoalTotalTax, Target: dec("-0.01")},
		{Goal: GoalEffectiveRate, Target: dec("1")},
		{Goal: GoalEffectiveRate, Target: dec("-0.1")},
		{Goal: "net_worth", Target: dec("1")},
	}
	for _, req := range invalid {
		err := req.Validate()
		var solverErr *SolverError
		require.ErrorAs(t, err, &solverErr, "%s %s", req.Goal, req.Target)
		assert.Equal(t, "validate_request", solverErr.Operation)
	}

	valid := SolveRequest{Goal: GoalEffectiveRate, Target: dec("0.2")}
	assert.NoError(t, valid.Validate())
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSolver(t).Solve(ctx, SolveRequest{Goal: GoalTakeHome, Target: dec("45984")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolve_MaxIterations(t *testing.T) {
	result, err := newTestSolver(t).Solve(context.Background(), SolveRequest{
		Goal:          GoalTakeHome,
		Target:        dec("45984"),
		MaxIterations: 5,
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 5, result.Iterations)
	assert.Equal(t, "Max iterations (5) reached", result.ConvergenceInfo)
	assert.True(t, result.Achieved.GreaterThanOrEqual(dec("45984")))
}

func TestSolveLadder(t *testing.T) {
	multi, err := newTestSolver(t).SolveLadder(context.Background(),
		SolveRequest{Goal: GoalTakeHome, Target: dec("45984")},
		[]SolveRequest{{Target: dec("54784")}})
	require.NoError(t, err)

	require.Len(t, multi.Results, 2)
	assert.Equal(t, "50000.00", multi.Results[0].Income.StringFixed(2))
	assert.Equal(t, "60000.00", multi.Results[1].Income.StringFixed(2))
	assert.Equal(t, []string{"Keeping $8,800 more takes $10,000 more gross income"}, multi.Notes)
}

func TestSolveLadder_MixedGoals(t *testing.T) {
	_, err := newTestSolver(t).SolveLadder(context.Background(),
		SolveRequest{Goal: GoalTakeHome, Target: dec("1000")},
		[]SolveRequest{{Goal: GoalTotalTax, Target: dec("100")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mixed goals")
}

func TestTableFormatter(t *testing.T) {
	result, err := newTestSolver(t).Solve(context.Background(), SolveRequest{Goal: GoalTakeHome, Target: dec("45984")})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	for _, want := range []string{
		"INCOME SOLVER RESULTS",
		"Goal:        Take-home pay",
		"Target:      $45,984",
		"✓ Converged",
		"Gross Income:   $50000.00",
		"Total Tax:      $4,016",
		"Marginal Rate:  12%",
	} {
		assert.Contains(t, out, want)
	}

	rate := &SolveResult{Request: SolveRequest{Goal: GoalEffectiveRate, Target: dec("0.15")}}
	assert.Contains(t, (&TableFormatter{}).Format(rate), "Target:      15.00%")
	assert.Contains(t, (&TableFormatter{}).Format(rate), "⚠ Did not converge")
}

func TestTableFormatter_Ladder(t *testing.T) {
	multi, err := newTestSolver(t).SolveLadder(context.Background(),
		SolveRequest{Goal: GoalTakeHome, Target: dec("45984")},
		[]SolveRequest{{Target: dec("54784")}})
	require.NoError(t, err)

	out := (&TableFormatter{}).FormatLadder(multi)
	assert.Contains(t, out, "INCOME LADDER: TAKE-HOME PAY")
	assert.Contains(t, out, "$60000.00")
	assert.Contains(t, out, "• Keeping $8,800 more")
}

func TestJSONFormatter(t *testing.T) {
	result, err := newTestSolver(t).Solve(context.Background(), SolveRequest{Goal: GoalTotalTax, Target: dec("4016")})
	require.NoError(t, err)

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "50000", decoded["income"])
	assert.Equal(t, true, decoded["success"])
	assert.NotContains(t, decoded, "Report")
	assert.Equal(t, "total_tax", decoded["request"].(map[string]interface{})["goal"])
}
