package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/output"
)

var (
	keyQuit      = key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"))
	keyCalculate = key.NewBinding(key.WithKeys("enter"))
	keyBreakdown = key.NewBinding(key.WithKeys("b"))
	keyDecrease  = key.NewBinding(key.WithKeys("left"))
	keyIncrease  = key.NewBinding(key.WithKeys("right"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ToggleBreakdownMsg:
		m.showBreakdown = !m.showBreakdown
		return m, nil

	case CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			m.clearResults()
			return m, nil
		}
		m.err = nil
		m.report = msg.Report
		m.chart = output.NewStackedBarChart(msg.Report.BracketDetails, msg.Report.TaxableIncome)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input. Keys that are not shortcuts go to
// the text input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit

	case key.Matches(msg, keyCalculate):
		return m.recalculate()

	case key.Matches(msg, keyBreakdown):
		return m, func() tea.Msg { return ToggleBreakdownMsg{} }

	case key.Matches(msg, keyDecrease):
		m.slider.Decrement()
		m.input.SetValue(strconv.FormatInt(m.slider.Value, 10))
		return m.recalculate()

	case key.Matches(msg, keyIncrease):
		m.slider.Increment()
		m.input.SetValue(strconv.FormatInt(m.slider.Value, 10))
		return m.recalculate()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if income, err := calculation.ParseIncome(m.input.Value()); err == nil {
		m.slider.SetIncome(income)
	}
	return m, cmd
}

// recalculate starts a calculation for the current input. An empty input
// clears the results instead.
func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.seq++
	if strings.TrimSpace(m.input.Value()) == "" {
		m.err = nil
		m.clearResults()
		return m, nil
	}
	return m, calculateCmd(m.calc, m.seq, m.input.Value())
}

func (m *Model) clearResults() {
	m.report = nil
	m.chart = output.StackedBarChart{}
}
