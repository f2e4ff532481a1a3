package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Income",
		"Type",
		"Taxable Income",
		"Total Tax",
		"Money Kept",
		"Effective Rate",
		"Marginal Rate",
		"Income Diff from Base",
		"Tax Diff from Base",
		"Kept Diff from Base",
		"Kept per Dollar",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, rowType string) []string {
	return []string{
		result.Income.StringFixed(2),
		rowType,
		result.TaxableIncome.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.MoneyKept.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.MarginalRate.StringFixed(4),
		result.IncomeDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.KeptDiffFromBase.StringFixed(2),
		result.KeptPerDollar.StringFixed(4),
	}
}
