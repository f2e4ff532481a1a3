package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/rgehrsitz/taxview/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one income's tax outcome, with deltas against the base income
type ComparisonResult struct {
	Label  string            `json:"label"`
	Report *domain.TaxReport `json:"-"`

	// Key Metrics
	Income        decimal.Decimal `json:"income"`
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	MoneyKept     decimal.Decimal `json:"moneyKept"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	MarginalRate  decimal.Decimal `json:"marginalRate"`

	// Comparison to Base
	IncomeDiffFromBase decimal.Decimal `json:"incomeDiffFromBase"`
	TaxDiffFromBase    decimal.Decimal `json:"taxDiffFromBase"`
	KeptDiffFromBase   decimal.Decimal `json:"keptDiffFromBase"`
	// Fraction of the income difference that ends up kept; zero when incomes match
	KeptPerDollar decimal.Decimal `json:"keptPerDollar"`
}

// ComparisonSet is a base income and the incomes compared against it
type ComparisonSet struct {
	TaxYear            int                `json:"taxYear"`
	FilingStatus       string             `json:"filingStatus"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Insights           []string           `json:"insights"`
}

// MetricsCalculator extracts key metrics from tax reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one report
func (mc *MetricsCalculator) CalculateMetrics(report *domain.TaxReport) ComparisonResult {
	return ComparisonResult{
		Label:         output.FormatCurrency(report.Income),
		Report:        report,
		Income:        report.Income,
		TaxableIncome: report.TaxableIncome,
		TotalTax:      report.TotalTaxOwed,
		MoneyKept:     report.MoneyKept(),
		EffectiveRate: report.EffectiveTaxRate,
		MarginalRate:  report.MarginalTaxRate,
	}
}

// CalculateComparison fills in the deltas between an income and the base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.IncomeDiffFromBase = alt.Income.Sub(base.Income)
	alt.TaxDiffFromBase = alt.TotalTax.Sub(base.TotalTax)
	alt.KeptDiffFromBase = alt.MoneyKept.Sub(base.MoneyKept)

	if !alt.IncomeDiffFromBase.IsZero() {
		alt.KeptPerDollar = alt.KeptDiffFromBase.Div(alt.IncomeDiffFromBase)
	}

	return alt
}

// GenerateInsights describes what changes between the base and each alternative
func GenerateInsights(compSet *ComparisonSet) []string {
	insights := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return insights
	}
	base := compSet.BaseResult

	for _, alt := range compSet.AlternativeResults {
		if alt.IncomeDiffFromBase.IsZero() {
			continue
		}

		direction := "extra"
		if alt.IncomeDiffFromBase.IsNegative() {
			direction = "lost"
		}
		insights = append(insights, fmt.Sprintf("%s vs %s: of the %s %s, %s is kept (%s)",
			alt.Label, base.Label, direction,
			output.FormatCurrency(alt.IncomeDiffFromBase.Abs()),
			output.FormatCurrency(alt.KeptDiffFromBase.Abs()),
			output.FormatPercentage(alt.KeptPerDollar)))

		if !alt.MarginalRate.Equal(base.MarginalRate) {
			insights = append(insights, fmt.Sprintf("%s moves the top bracket from %s to %s; only income above the boundary is taxed at the new rate",
				alt.Label, output.FormatRate(base.MarginalRate), output.FormatRate(alt.MarginalRate)))
		}
	}

	// Find lowest effective rate among incomes that pay tax
	var lowest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.IsPositive() && (lowest == nil || alt.EffectiveRate.LessThan(lowest.EffectiveRate)) {
			lowest = alt
		}
	}
	if lowest != nil && base.TotalTax.IsPositive() && lowest.EffectiveRate.LessThan(base.EffectiveRate) {
		insights = append(insights, fmt.Sprintf("Lowest effective rate: %s at %s",
			lowest.Label, output.FormatPercentage(lowest.EffectiveRate)))
	}

	return insights
}
