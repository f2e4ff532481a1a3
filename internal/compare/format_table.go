package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing incomes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("INCOME COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Table: %d %s\n", compSet.TaxYear, compSet.FilingStatus))
	sb.WriteString(fmt.Sprintf("Base Income: %s\n", compSet.BaseResult.Label))
	sb.WriteString("\n")

	labelWidth := 18
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		labelWidth, "Income",
		numWidth, "Total Tax",
		numWidth, "Money Kept",
		numWidth, "Effective",
		numWidth, "Marginal"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, labelWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, labelWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Label))
			sb.WriteString(fmt.Sprintf("  Income:      %s\n", tf.formatDelta(alt.IncomeDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Tax:         %s\n", tf.formatDelta(alt.TaxDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  Money Kept:  %s\n", tf.formatDelta(alt.KeptDiffFromBase)))
			if !alt.IncomeDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Kept/Dollar: %s\n", output.FormatPercentage(alt.KeptPerDollar)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Insights) > 0 {
		sb.WriteString("\nINSIGHTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, insight := range compSet.Insights {
			sb.WriteString(fmt.Sprintf("• %s\n", insight))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single income row
func (tf *TableFormatter) formatRow(result *ComparisonResult, labelWidth, numWidth int, isBase bool) string {
	label := result.Label
	if isBase {
		label += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		labelWidth, label,
		numWidth, output.FormatCurrency(result.TotalTax),
		numWidth, output.FormatCurrency(result.MoneyKept),
		numWidth, output.FormatPercentage(result.EffectiveRate),
		numWidth, output.FormatRate(result.MarginalRate))
}

// formatDelta renders a signed currency change
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + output.FormatCurrency(delta)
	}
	if delta.IsZero() {
		return "no change"
	}
	return output.FormatCurrency(delta)
}

// FormatCompact creates a compact single-line summary for each income
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseResult.Label))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%s: kept %s", alt.Label, tf.formatDelta(alt.KeptDiffFromBase)))
	}

	return sb.String()
}
