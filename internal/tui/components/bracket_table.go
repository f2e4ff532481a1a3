package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

var bracketColumns = []struct {
	title string
	width int
}{
	{"Rate", 6},
	{"Range", 24},
	{"Income", 13},
	{"Tax", 12},
	{"Share", 8},
}

// BracketTable renders one row per bracket touched by the taxable income
type BracketTable struct {
	Details       []domain.BracketDetail
	TaxableIncome decimal.Decimal
	TotalTax      decimal.Decimal
}

// Render returns the table, or a short notice when no bracket was touched
func (t BracketTable) Render() string {
	if len(t.Details) == 0 {
		return tuistyles.InfoStyle.Render("No taxable income after the standard deduction.")
	}

	var b strings.Builder
	header := make([]string, len(bracketColumns))
	total := 0
	for i, col := range bracketColumns {
		header[i] = cell(col.title, col.width, i == 0)
		total += col.width + 1
	}
	b.WriteString(tuistyles.TableHeaderStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")
	b.WriteString(tuistyles.TableMutedStyle.Render(strings.Repeat("─", total-1)))
	b.WriteString("\n")

	for _, d := range t.Details {
		row := []string{
			output.FormatRate(d.Rate),
			bracketRange(d),
			output.FormatCurrency(d.IncomeInBracket),
			output.FormatCurrency(d.TaxInBracket),
			d.ShareOf(t.TaxableIncome).StringFixed(1) + "%",
		}
		for i, v := range row {
			row[i] = cell(v, bracketColumns[i].width, i == 0)
		}
		b.WriteString(tuistyles.TableCellStyle.Render(strings.Join(row, " ")))
		b.WriteString("\n")
	}

	b.WriteString(tuistyles.TableMutedStyle.Render(strings.Repeat("─", total-1)))
	b.WriteString("\n")
	footer := []string{
		cell("Total", bracketColumns[0].width, true),
		cell("", bracketColumns[1].width, false),
		cell(output.FormatCurrency(t.TaxableIncome), bracketColumns[2].width, false),
		cell(output.FormatCurrency(t.TotalTax), bracketColumns[3].width, false),
		cell("100.0%", bracketColumns[4].width, false),
	}
	b.WriteString(tuistyles.TableHeaderStyle.Render(strings.Join(footer, " ")))

	return b.String()
}

func bracketRange(d domain.BracketDetail) string {
	if d.UpperBound == nil {
		return output.FormatCurrency(d.LowerBound) + "+"
	}
	return output.FormatCurrency(d.LowerBound) + " - " + output.FormatCurrency(*d.UpperBound)
}

func cell(value string, width int, left bool) string {
	align := lipgloss.Right
	if left {
		align = lipgloss.Left
	}
	return lipgloss.NewStyle().Width(width).Align(align).Render(value)
}
