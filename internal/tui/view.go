package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/components"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		m.renderInput(),
		m.renderCards(),
	}

	if m.report != nil {
		if progress, ok := components.NewBracketProgress(m.report.BracketDetails, m.calc.Facts.Brackets); ok {
			sections = append(sections, progress.Render()+"\n")
		}
	}

	if m.report != nil && m.showBreakdown {
		sections = append(sections,
			BorderStyle.Render(components.BracketTable{
				Details:       m.report.BracketDetails,
				TaxableIncome: m.report.TaxableIncome,
				TotalTax:      m.report.TotalTaxOwed,
			}.Render()),
			BorderStyle.Render(components.NewBracketChart(m.chart).Render()),
		)
	}

	sections = append(sections, m.renderStatusBar())
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the active tax table
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TaxView - Federal Income Tax Brackets")

	facts := m.calc.Facts
	subtitle := SubtitleStyle.Render(fmt.Sprintf("%d • %s • standard deduction %s",
		facts.TaxYear, facts.FilingStatus, output.FormatCurrency(facts.StandardDeduction)))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m Model) renderInput() string {
	lines := []string{m.input.View(), "", m.slider.Render()}
	if m.err != nil {
		lines = append(lines, "", ErrorStyle.Render("Error: "+calculationMessage(m.err)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// renderCards renders the four summary metrics, or placeholders before a result
func (m Model) renderCards() string {
	keep := components.NewMetricCard("Take-home", "").WithTone(tuistyles.ToneKeep)
	tax := components.NewMetricCard("Tax paid", "").WithTone(tuistyles.ToneTax)
	effective := components.NewMetricCard("Effective rate", "")
	marginal := components.NewMetricCard("Marginal rate", "")

	if r := m.report; r != nil {
		keep.Value = output.FormatCurrency(r.MoneyKept())
		keep.Description = output.FormatPercentage(r.PercentKept()) + " kept"
		tax.Value = output.FormatCurrency(r.TotalTaxOwed)
		tax.Description = "on " + output.FormatCurrency(r.TaxableIncome) + " taxable"
		effective.Value = output.FormatPercentage(r.EffectiveTaxRate)
		effective.Description = output.FormatCurrency(r.EffectiveDollars())
		marginal.Value = output.FormatPercentage(r.MarginalTaxRate)
		marginal.Description = output.FormatCurrency(r.MarginalDollars())
	}

	columns := 4
	if m.width < 100 {
		columns = 2
	}
	return components.MetricGrid([]*components.MetricCard{keep, tax, effective, marginal}, columns)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("enter", "calculate"),
		formatShortcut("←/→", "adjust $1,000"),
		formatShortcut("b", "toggle breakdown"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(max(0, m.width-4)).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// calculationMessage strips wrapping context for display
func calculationMessage(err error) string {
	return errors.Cause(err).Error()
}
