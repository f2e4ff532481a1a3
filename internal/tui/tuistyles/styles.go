// Package tuistyles holds the lipgloss palette and styles shared by the
// terminal UI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/output"
)

var (
	ColorPrimary = lipgloss.Color("#7AA2F7")
	ColorAccent  = lipgloss.Color("#E0AF68")
	ColorTax     = lipgloss.Color(output.ChartTaxColor)
	ColorKeep    = lipgloss.Color(output.ChartTakeHomeColor)
	ColorInfo    = lipgloss.Color("#7DCFFF")

	ColorForeground = lipgloss.Color("#EAF3FF")
	ColorMuted      = lipgloss.Color("#737AA2")
	ColorBorder     = lipgloss.Color("#3B4261")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorTax).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle   = lipgloss.NewStyle().Foreground(ColorForeground)
	TableMutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Tone picks the value color of a metric
type Tone int

const (
	ToneNeutral Tone = iota
	ToneKeep
	ToneTax
)

// ValueStyle returns the metric value style for a tone
func ValueStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneKeep:
		return MetricValueStyle.Foreground(ColorKeep)
	case ToneTax:
		return MetricValueStyle.Foreground(ColorTax)
	default:
		return MetricValueStyle
	}
}
