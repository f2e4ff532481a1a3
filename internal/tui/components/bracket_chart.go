package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/rgehrsitz/taxview/internal/tui/tuistyles"
)

const yAxisWidth = 9

// BracketChart draws a StackedBarChart as vertical bars, tax paid stacked
// under take-home income, scaled to the chart's SuggestedMax.
type BracketChart struct {
	Chart    output.StackedBarChart
	Height   int
	BarWidth int
	Gap      int
}

// NewBracketChart creates a chart renderer with terminal-friendly defaults
func NewBracketChart(chart output.StackedBarChart) BracketChart {
	return BracketChart{
		Chart:    chart,
		Height:   12,
		BarWidth: 5,
		Gap:      2,
	}
}

// Segments returns, per bar, how many rows the tax and take-home parts fill.
// Any non-zero part gets at least one row so thin slices stay visible.
func (c BracketChart) Segments() [][2]int {
	heights := c.Chart.BarHeights()
	segments := make([][2]int, len(heights))
	for i, h := range heights {
		tax := rows(h[0], c.Height)
		keep := rows(h[1], c.Height)
		if tax+keep > c.Height {
			keep = c.Height - tax
		}
		segments[i] = [2]int{tax, keep}
	}
	return segments
}

func rows(fraction float64, height int) int {
	if fraction <= 0 {
		return 0
	}
	return max(1, min(height, int(math.Round(fraction*float64(height)))))
}

// Render returns the styled chart, or a notice when there is nothing to draw
func (c BracketChart) Render() string {
	if c.Chart.Empty() {
		return tuistyles.InfoStyle.Render("No taxable income to chart.")
	}

	segments := c.Segments()
	taxStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorTax)
	keepStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorKeep)
	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	block := strings.Repeat("█", c.BarWidth)
	blank := strings.Repeat(" ", c.BarWidth)
	gap := strings.Repeat(" ", c.Gap)

	var out strings.Builder
	for row := c.Height - 1; row >= 0; row-- {
		label := ""
		switch row {
		case c.Height - 1:
			label = formatChartValue(c.Chart.SuggestedMax)
		case c.Height / 2:
			label = formatChartValue(c.Chart.SuggestedMax * float64(row+1) / float64(c.Height))
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │")

		for _, seg := range segments {
			out.WriteString(gap)
			switch {
			case row < seg[0]:
				out.WriteString(taxStyle.Render(block))
			case row < seg[0]+seg[1]:
				out.WriteString(keepStyle.Render(block))
			default:
				out.WriteString(blank)
			}
		}
		out.WriteString("\n")
	}

	plotWidth := len(segments) * (c.BarWidth + c.Gap)
	out.WriteString(axisStyle.Render("$0"))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth))
	out.WriteString("\n")

	out.WriteString(strings.Repeat(" ", yAxisWidth+2))
	labelStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(c.BarWidth).
		Align(lipgloss.Center)
	for _, l := range c.Chart.Labels {
		out.WriteString(gap)
		out.WriteString(labelStyle.Render(l))
	}
	out.WriteString("\n\n")
	out.WriteString(c.renderLegend(taxStyle, keepStyle))

	return out.String()
}

func (c BracketChart) renderLegend(taxStyle, keepStyle lipgloss.Style) string {
	items := make([]string, 0, len(c.Chart.Datasets))
	for i, ds := range c.Chart.Datasets {
		style := keepStyle
		if i == 0 {
			style = taxStyle
		}
		items = append(items, fmt.Sprintf("%s %s", style.Render("█"), ds.Label))
	}
	return tuistyles.SubtitleStyle.Render(strings.Join(items, " • "))
}

// formatChartValue formats a value for display on the Y axis
func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("$%.1fM", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}
