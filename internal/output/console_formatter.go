package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxview/internal/domain"
)

// ConsoleFormatter renders the summary block and bracket table as plain text
type ConsoleFormatter struct {
	HideAssumptions bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("FEDERAL INCOME TAX BREAKDOWN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Year:               %d\n", report.TaxYear))
	sb.WriteString(fmt.Sprintf("Filing Status:      %s\n", report.FilingStatus))
	sb.WriteString(fmt.Sprintf("Income:             %s\n", FormatCurrency(report.Income)))
	sb.WriteString(fmt.Sprintf("Standard Deduction: %s\n", FormatCurrency(report.StandardDeduction)))
	sb.WriteString(fmt.Sprintf("Taxable Income:     %s\n", FormatCurrency(report.TaxableIncome)))
	sb.WriteString(fmt.Sprintf("Total Tax Owed:     %s\n", FormatCurrency(report.TotalTaxOwed)))
	sb.WriteString(fmt.Sprintf("Effective Rate:     %s (%s)\n", FormatPercentage(report.EffectiveTaxRate), FormatCurrency(report.EffectiveDollars())))
	sb.WriteString(fmt.Sprintf("Marginal Rate:      %s (%s)\n", FormatPercentage(report.MarginalTaxRate), FormatCurrency(report.MarginalDollars())))
	sb.WriteString(fmt.Sprintf("Money Kept:         %s (%s)\n", FormatCurrency(report.MoneyKept()), FormatPercentage(report.PercentKept())))
	sb.WriteString("\n")

	sb.WriteString(c.formatTable(report))

	if !c.HideAssumptions {
		sb.WriteString("\nASSUMPTIONS\n")
		for _, a := range DefaultAssumptions {
			sb.WriteString("• " + a + "\n")
		}
	}

	return []byte(sb.String()), nil
}

func (c ConsoleFormatter) formatTable(report *domain.TaxReport) string {
	var sb strings.Builder

	sb.WriteString("BRACKET BREAKDOWN\n")
	if len(report.BracketDetails) == 0 {
		sb.WriteString("No taxable income: nothing falls into any bracket.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-6s %-24s %14s %12s %8s\n", "Rate", "Range", "Income Slice", "Tax", "Share"))
	sb.WriteString(strings.Repeat("-", 68) + "\n")
	for _, d := range report.BracketDetails {
		sb.WriteString(fmt.Sprintf("%-6s %-24s %14s %12s %7s%%\n",
			FormatRate(d.Rate),
			formatRange(d),
			FormatCurrency(d.IncomeInBracket),
			FormatCurrency(d.TaxInBracket),
			d.ShareOf(report.TaxableIncome).StringFixed(1)))
	}
	sb.WriteString(strings.Repeat("-", 68) + "\n")
	sb.WriteString(fmt.Sprintf("%-6s %-24s %14s %12s\n", "", "Total",
		FormatCurrency(report.TaxableIncome), FormatCurrency(report.TotalTaxOwed)))

	return sb.String()
}

func formatRange(d domain.BracketDetail) string {
	if d.UpperBound == nil {
		return FormatCurrency(d.LowerBound) + "+"
	}
	return FormatCurrency(d.LowerBound) + " - " + FormatCurrency(*d.UpperBound)
}
