package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates income comparison
type CompareEngine struct {
	Calculator        *calculation.BracketTaxCalculator
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc *calculation.BracketTaxCalculator) *CompareEngine {
	return &CompareEngine{
		Calculator:        calc,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare calculates the base income and each alternative against the same table
func (ce *CompareEngine) Compare(
	ctx context.Context,
	baseIncome decimal.Decimal,
	alternatives []decimal.Decimal,
) (*ComparisonSet, error) {
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("at least one income to compare against the base is required")
	}

	baseReport := ce.Calculator.Calculate(baseIncome)
	baseResult := ce.MetricsCalculator.CalculateMetrics(&baseReport)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, income := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}

		report := ce.Calculator.Calculate(income)
		altResult := ce.MetricsCalculator.CalculateMetrics(&report)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		TaxYear:            ce.Calculator.Facts.TaxYear,
		FilingStatus:       ce.Calculator.Facts.FilingStatus,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Insights = GenerateInsights(compSet)

	return compSet, nil
}
