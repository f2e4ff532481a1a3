package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
)

// Placeholder is shown in place of a value before anything is calculated
const Placeholder = "—"

// MetricCard displays a single metric with label, value, and optional detail line
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Tone        tuistyles.Tone
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 22,
	}
}

// WithDescription adds a detail line under the value
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithTone colors the value
func (m *MetricCard) WithTone(tone tuistyles.Tone) *MetricCard {
	m.Tone = tone
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	value := m.Value
	if value == "" {
		value = Placeholder
	}

	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.ValueStyle(m.Tone).Render(value)

	desc := m.Description
	if desc == "" {
		desc = Placeholder
	}
	content += "\n" + tuistyles.SubtitleStyle.Render(desc)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
