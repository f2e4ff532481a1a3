package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
)

// BracketProgress shows how far taxable income reaches into its top bracket
type BracketProgress struct {
	Detail domain.BracketDetail
	Next   *domain.TaxBracket
	Width  int
}

// NewBracketProgress builds the indicator for the last bracket of a result.
// brackets is the full table, used to name the next rate. ok is false when
// nothing was taxed.
func NewBracketProgress(details []domain.BracketDetail, brackets []domain.TaxBracket) (BracketProgress, bool) {
	if len(details) == 0 {
		return BracketProgress{}, false
	}
	p := BracketProgress{Detail: details[len(details)-1], Width: 40}
	if idx := len(details); idx < len(brackets) {
		p.Next = &brackets[idx]
	}
	return p, true
}

// Fraction is the filled share of the bracket, 1 for the unbounded top bracket
func (p BracketProgress) Fraction() float64 {
	if p.Detail.UpperBound == nil {
		return 1
	}
	width := p.Detail.UpperBound.Sub(p.Detail.LowerBound)
	if !width.IsPositive() {
		return 1
	}
	return p.Detail.IncomeInBracket.Div(width).InexactFloat64()
}

// Render returns the styled bar with a one-line summary
func (p BracketProgress) Render() string {
	var content strings.Builder

	labelStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorForeground).
		Bold(true)
	content.WriteString(labelStyle.Render(output.FormatRate(p.Detail.Rate) + " bracket"))
	content.WriteString("\n")

	filled := int(float64(p.Width) * p.Fraction())
	filled = max(0, min(p.Width, filled))
	empty := p.Width - filled

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorTax)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("] ")

	room, bounded := p.Detail.Headroom()
	statStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	switch {
	case !bounded:
		content.WriteString(statStyle.Render("top rate: every further dollar is taxed at " + output.FormatRate(p.Detail.Rate)))
	case p.Next != nil:
		content.WriteString(statStyle.Render(fmt.Sprintf("%s until %s", output.FormatCurrency(room), output.FormatRate(p.Next.Rate))))
	default:
		content.WriteString(statStyle.Render(output.FormatCurrency(room) + " left in bracket"))
	}

	return content.String()
}
