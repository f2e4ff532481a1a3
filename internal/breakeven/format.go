package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solve results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solve result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("INCOME SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Goal:        %s\n", GoalLabel(result.Request.Goal)))
	sb.WriteString(fmt.Sprintf("Target:      %s\n", tf.formatValue(result.Request.Goal, result.Request.Target)))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED INCOME\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income:   $%s\n", result.Income.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Achieved:       %s\n", tf.formatValue(result.Request.Goal, result.Achieved)))

	if report := result.Report; report != nil {
		sb.WriteString(fmt.Sprintf("Total Tax:      %s\n", output.FormatCurrency(report.TotalTaxOwed)))
		sb.WriteString(fmt.Sprintf("Money Kept:     %s\n", output.FormatCurrency(report.MoneyKept())))
		sb.WriteString(fmt.Sprintf("Effective Rate: %s\n", output.FormatPercentage(report.EffectiveTaxRate)))
		sb.WriteString(fmt.Sprintf("Marginal Rate:  %s\n", output.FormatRate(report.MarginalTaxRate)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatLadder formats results from a ladder of targets
func (tf *TableFormatter) FormatLadder(result *MultiSolveResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("INCOME LADDER: %s\n", strings.ToUpper(GoalLabel(result.Goal))))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %16s %14s %14s %12s\n",
		"Target", "Gross Income", "Total Tax", "Money Kept", "Marginal"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		tax, kept, marginal := "-", "-", "-"
		if res.Report != nil {
			tax = output.FormatCurrency(res.Report.TotalTaxOwed)
			kept = output.FormatCurrency(res.Report.MoneyKept())
			marginal = output.FormatRate(res.Report.MarginalTaxRate)
		}
		sb.WriteString(fmt.Sprintf("%-16s %16s %14s %14s %12s\n",
			tf.truncate(tf.formatValue(result.Goal, res.Request.Target), 16),
			"$"+res.Income.StringFixed(2),
			tax, kept, marginal))
	}
	sb.WriteString("\n")

	if len(result.Notes) > 0 {
		sb.WriteString("NOTES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, note := range result.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// GoalLabel names a goal for display
func GoalLabel(goal SolveGoal) string {
	switch goal {
	case GoalTakeHome:
		return "Take-home pay"
	case GoalTotalTax:
		return "Total tax"
	case GoalEffectiveRate:
		return "Effective rate"
	}
	return string(goal)
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatValue(goal SolveGoal, d decimal.Decimal) string {
	if goal == GoalEffectiveRate {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}
	return output.FormatCurrency(d)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
