package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const (
	DefaultIncomeMax  int64 = 1_000_000
	DefaultIncomeStep int64 = 1_000
)

// IncomeSlider is a whole-dollar slider over [Min, Max] moved in Step increments
type IncomeSlider struct {
	Label string
	Value int64
	Min   int64
	Max   int64
	Step  int64
	Width int
}

// NewIncomeSlider creates the default 0 to 1,000,000 slider in steps of 1,000
func NewIncomeSlider() IncomeSlider {
	return IncomeSlider{
		Label: "Income",
		Min:   0,
		Max:   DefaultIncomeMax,
		Step:  DefaultIncomeStep,
		Width: 40,
	}
}

// Increment moves one step right, stopping at Max
func (s *IncomeSlider) Increment() {
	s.SetValue(s.Value + s.Step)
}

// Decrement moves one step left, stopping at Min
func (s *IncomeSlider) Decrement() {
	s.SetValue(s.Value - s.Step)
}

// SetValue sets the value directly, clamping to min/max
func (s *IncomeSlider) SetValue(value int64) {
	s.Value = max(s.Min, min(s.Max, value))
}

// SetIncome follows a typed income, rounding to whole dollars
func (s *IncomeSlider) SetIncome(income decimal.Decimal) {
	if income.GreaterThan(decimal.NewFromInt(s.Max)) {
		s.SetValue(s.Max)
		return
	}
	s.SetValue(income.Round(0).IntPart())
}

// Percentage returns the value as a fraction of the range
func (s IncomeSlider) Percentage() float64 {
	if s.Max == s.Min {
		return 0
	}
	return float64(s.Value-s.Min) / float64(s.Max-s.Min)
}

// Render returns the styled slider with its value and range
func (s IncomeSlider) Render() string {
	var content strings.Builder

	content.WriteString(tuistyles.ParameterLabelStyle.Render(s.Label))
	content.WriteString("  ")
	content.WriteString(tuistyles.ParameterValueStyle.Render(output.FormatCurrency(decimal.NewFromInt(s.Value))))
	content.WriteString("\n")
	content.WriteString(s.renderBar())
	content.WriteString("\n")

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(rangeStyle.Render(
		output.FormatCurrency(decimal.NewFromInt(s.Min)) + "  ─  " + output.FormatCurrency(decimal.NewFromInt(s.Max)),
	))

	return content.String()
}

func (s IncomeSlider) renderBar() string {
	width := max(s.Width, 2)
	filled := int(math.Round(float64(width-1) * s.Percentage()))
	filled = max(0, min(width-1, filled))
	empty := width - 1 - filled

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(tuistyles.SliderThumbStyle.Render(strings.Repeat("━", filled) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", empty)))
	bar.WriteString("]")
	return bar.String()
}
