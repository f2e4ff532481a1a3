package output

import (
	"math"

	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	ChartTaxColor      = "#FF9B8B"
	ChartTakeHomeColor = "#69F5C3"
	chartHeadroom      = 1.15
)

// ChartDataset is one stacked series of the bracket chart
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Stack string    `json:"stack"`
	Color string    `json:"backgroundColor"`
}

// StackedBarChart describes the per-bracket chart: one bar per bracket,
// tax paid stacked under take-home income. Each render owns its own value.
type StackedBarChart struct {
	Labels       []string       `json:"labels"`
	Datasets     []ChartDataset `json:"datasets"`
	SuggestedMax float64        `json:"suggestedMax"`
}

// NewStackedBarChart builds the chart for a detail list. With no details or no
// taxable income the chart is empty and the presentation should clear it.
func NewStackedBarChart(details []domain.BracketDetail, taxableIncome decimal.Decimal) StackedBarChart {
	if len(details) == 0 || !taxableIncome.IsPositive() {
		return StackedBarChart{Labels: []string{}, Datasets: []ChartDataset{}}
	}

	labels := lo.Map(details, func(d domain.BracketDetail, _ int) string { return FormatRate(d.Rate) })
	taxPaid := lo.Map(details, func(d domain.BracketDetail, _ int) float64 { return d.TaxInBracket.InexactFloat64() })
	takeHome := lo.Map(details, func(d domain.BracketDetail, _ int) float64 { return d.TakeHome().InexactFloat64() })

	return StackedBarChart{
		Labels: labels,
		Datasets: []ChartDataset{
			{Label: "Tax Paid", Data: taxPaid, Stack: "slice", Color: ChartTaxColor},
			{Label: "Take-Home Income", Data: takeHome, Stack: "slice", Color: ChartTakeHomeColor},
		},
		SuggestedMax: math.Max(1, taxableIncome.InexactFloat64()) * chartHeadroom,
	}
}

// Empty reports whether there is nothing to draw
func (c StackedBarChart) Empty() bool {
	return len(c.Labels) == 0
}

// BarHeights returns, per bracket, the tax and take-home segments as
// fractions of SuggestedMax, for renderers that draw bars themselves.
func (c StackedBarChart) BarHeights() [][2]float64 {
	if c.Empty() || len(c.Datasets) < 2 || c.SuggestedMax <= 0 {
		return nil
	}
	heights := make([][2]float64, len(c.Labels))
	for i := range c.Labels {
		heights[i] = [2]float64{
			c.Datasets[0].Data[i] / c.SuggestedMax,
			c.Datasets[1].Data[i] / c.SuggestedMax,
		}
	}
	return heights
}
