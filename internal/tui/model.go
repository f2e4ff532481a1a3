// Package tui is the interactive terminal front end for the bracket calculator.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/components"
)

// Model represents the entire application state. Everything the view draws,
// including the chart, is derived from fields here.
type Model struct {
	// Terminal dimensions
	width  int
	height int

	calc *calculation.BracketTaxCalculator

	input  textinput.Model
	slider components.IncomeSlider

	// Latest accepted result; nil before the first calculation or after clearing
	report *domain.TaxReport
	chart  output.StackedBarChart

	showBreakdown bool
	seq           int

	err error
}

// NewModel creates the model around a validated calculator. A non-empty
// initialIncome is calculated as soon as the program starts.
func NewModel(calc *calculation.BracketTaxCalculator, initialIncome string) Model {
	input := textinput.New()
	input.Placeholder = "e.g. 85000"
	input.Prompt = "Income $ "
	input.CharLimit = 20
	input.Width = 20
	input.SetValue(initialIncome)
	input.Focus()

	m := Model{
		calc:          calc,
		input:         input,
		slider:        components.NewIncomeSlider(),
		showBreakdown: true,
		width:         80,
		height:        24,
	}
	if income, err := calculation.ParseIncome(initialIncome); err == nil {
		m.slider.SetIncome(income)
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.input.Value() == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, calculateCmd(m.calc, m.seq, m.input.Value()))
}

// calculateCmd returns a command that parses raw and runs the calculator
func calculateCmd(calc *calculation.BracketTaxCalculator, seq int, raw string) tea.Cmd {
	return func() tea.Msg {
		income, err := calculation.ParseIncome(raw)
		if err != nil {
			return CalculationCompleteMsg{Seq: seq, Input: raw, Err: err}
		}
		report := calc.Calculate(income)
		return CalculationCompleteMsg{Seq: seq, Input: raw, Report: &report}
	}
}

// Report returns the latest accepted result, or nil
func (m Model) Report() *domain.TaxReport {
	return m.report
}

// Chart returns the chart for the latest result; it is empty when cleared
func (m Model) Chart() output.StackedBarChart {
	return m.chart
}

// Err returns the current input error, if any
func (m Model) Err() error {
	return m.err
}

// Income returns the current text of the income input
func (m Model) Income() string {
	return m.input.Value()
}

// SliderValue returns the slider position in whole dollars
func (m Model) SliderValue() int64 {
	return m.slider.Value
}

// BreakdownVisible reports whether the table and chart are shown
func (m Model) BreakdownVisible() bool {
	return m.showBreakdown
}
