package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/config"
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(t *testing.T, income int64) domain.TaxReport {
	t.Helper()
	calc, err := calculation.NewBracketTaxCalculator(*config.NewTaxFactsParser().Default())
	require.NoError(t, err)
	return calc.Calculate(decimal.NewFromInt(income))
}

func TestIncomeSlider(t *testing.T) {
	s := NewIncomeSlider()
	assert.Equal(t, int64(0), s.Value)

	s.Decrement()
	assert.Equal(t, int64(0), s.Value, "Should not move below Min")

	s.Increment()
	s.Increment()
	assert.Equal(t, int64(2000), s.Value)

	s.SetValue(999_500)
	s.Increment()
	assert.Equal(t, DefaultIncomeMax, s.Value, "Should stop at Max")

	s.SetIncome(decimal.RequireFromString("50000.49"))
	assert.Equal(t, int64(50000), s.Value)

	s.SetIncome(decimal.NewFromInt(5_000_000))
	assert.Equal(t, DefaultIncomeMax, s.Value, "Typed income above the range should pin to Max")

	s.SetValue(500_000)
	assert.InDelta(t, 0.5, s.Percentage(), 1e-9)

	rendered := s.Render()
	assert.Contains(t, rendered, "$500,000")
	assert.Contains(t, rendered, "$1,000,000")
	assert.Contains(t, rendered, "●")
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Tax paid", "$4,016").WithDescription("8.0% effective")
	rendered := card.Render()
	assert.Contains(t, rendered, "Tax paid")
	assert.Contains(t, rendered, "$4,016")
	assert.Contains(t, rendered, "8.0% effective")

	empty := NewMetricCard("Take-home", "").Render()
	assert.Contains(t, empty, Placeholder)

	grid := MetricGrid([]*MetricCard{card, NewMetricCard("A", "1"), NewMetricCard("B", "2")}, 2)
	assert.Contains(t, grid, "Tax paid")
	assert.Contains(t, grid, "B")
	assert.Empty(t, MetricGrid(nil, 2))
}

func TestBracketTable(t *testing.T) {
	r := report(t, 50000)
	rendered := BracketTable{Details: r.BracketDetails, TaxableIncome: r.TaxableIncome, TotalTax: r.TotalTaxOwed}.Render()

	assert.Contains(t, rendered, "10%")
	assert.Contains(t, rendered, "12%")
	assert.Contains(t, rendered, "$11,600")
	assert.Contains(t, rendered, "$23,800")
	assert.Contains(t, rendered, "$2,856")
	assert.Contains(t, rendered, "$35,400")
	assert.Contains(t, rendered, "$4,016")
	assert.Contains(t, rendered, "32.8%")
	assert.Contains(t, rendered, "67.2%")

	top := report(t, 1_000_000)
	rendered = BracketTable{Details: top.BracketDetails, TaxableIncome: top.TaxableIncome, TotalTax: top.TotalTaxOwed}.Render()
	assert.Contains(t, rendered, "$609,350+")

	assert.Contains(t, BracketTable{}.Render(), "No taxable income")
}

func TestBracketChart(t *testing.T) {
	r := report(t, 50000)
	chart := NewBracketChart(output.NewStackedBarChart(r.BracketDetails, r.TaxableIncome))

	segments := chart.Segments()
	require.Len(t, segments, 2)
	// 1,160 of 40,710 rounds to zero rows but stays visible
	assert.Equal(t, [2]int{1, 3}, segments[0])
	assert.Equal(t, [2]int{1, 6}, segments[1])

	rendered := chart.Render()
	assert.Contains(t, rendered, "Tax Paid")
	assert.Contains(t, rendered, "Take-Home Income")
	assert.Contains(t, rendered, "10%")
	assert.Contains(t, rendered, "$41K")
	assert.Equal(t, chart.Height+3, strings.Count(rendered, "\n"))

	empty := NewBracketChart(output.NewStackedBarChart(nil, decimal.Zero))
	assert.Empty(t, empty.Segments())
	assert.Contains(t, empty.Render(), "No taxable income")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$950", formatChartValue(950))
	assert.Equal(t, "$41K", formatChartValue(40710))
	assert.Equal(t, "$1.1M", formatChartValue(1_101_000))
}

func TestBracketProgress(t *testing.T) {
	brackets := config.NewTaxFactsParser().Default().Brackets

	r := report(t, 50000)
	p, ok := NewBracketProgress(r.BracketDetails, brackets)
	require.True(t, ok)
	require.NotNil(t, p.Next)
	assert.InDelta(t, 23800.0/35550.0, p.Fraction(), 1e-9)
	rendered := p.Render()
	assert.Contains(t, rendered, "12% bracket")
	assert.Contains(t, rendered, "$11,750 until 22%")

	top := report(t, 1_000_000)
	p, ok = NewBracketProgress(top.BracketDetails, brackets)
	require.True(t, ok)
	assert.Nil(t, p.Next)
	assert.Equal(t, 1.0, p.Fraction())
	assert.Contains(t, p.Render(), "top rate")

	_, ok = NewBracketProgress(nil, brackets)
	assert.False(t, ok)
}
