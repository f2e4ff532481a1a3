package calculation

import (
	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Single flat standard deduction, no phase-outs, no age adjustments.
// 2. Brackets are marginal: each slice of taxable income is taxed only at its own rate.
// 3. Amounts are fixed-point decimals, so slice sums match taxable income exactly.

// CalculateTaxDetails computes the progressive bracket breakdown for one gross income.
//
// brackets must be non-empty, ascending, and end with an unbounded bracket
// (see ValidateBrackets). Income at or below the deduction yields a zero result
// with an empty detail list.
func CalculateTaxDetails(grossIncome, standardDeduction decimal.Decimal, brackets []domain.TaxBracket) domain.TaxResult {
	taxableIncome := decimal.Max(decimal.Zero, grossIncome.Sub(standardDeduction))

	remainingIncome := taxableIncome
	lowerBound := decimal.Zero
	totalTax := decimal.Zero
	marginalRate := decimal.Zero
	details := []domain.BracketDetail{}

	for _, bracket := range brackets {
		// The unbounded bracket takes whatever is left.
		slice := remainingIncome
		if !bracket.IsUnbounded() {
			slice = decimal.Min(remainingIncome, bracket.Max.Sub(lowerBound))
		}
		slice = decimal.Max(decimal.Zero, slice)

		if slice.IsPositive() {
			tax := slice.Mul(bracket.Rate)

			detail := domain.BracketDetail{
				Rate:            bracket.Rate,
				LowerBound:      lowerBound,
				IncomeInBracket: slice,
				TaxInBracket:    tax,
			}
			if !bracket.IsUnbounded() {
				upper := *bracket.Max
				detail.UpperBound = &upper
			}
			details = append(details, detail)

			totalTax = totalTax.Add(tax)
			remainingIncome = remainingIncome.Sub(slice)
			marginalRate = bracket.Rate
		}

		if !bracket.IsUnbounded() {
			lowerBound = *bracket.Max
		}
		if !remainingIncome.IsPositive() {
			break
		}
	}

	effectiveRate := decimal.Zero
	if grossIncome.IsPositive() {
		effectiveRate = totalTax.Div(grossIncome)
	}

	return domain.TaxResult{
		TaxableIncome:    taxableIncome,
		BracketDetails:   details,
		TotalTaxOwed:     totalTax,
		EffectiveTaxRate: effectiveRate,
		MarginalTaxRate:  marginalRate,
	}
}

// SumIncome adds up the income slices of a detail list
func SumIncome(details []domain.BracketDetail) decimal.Decimal {
	return lo.Reduce(details, func(acc decimal.Decimal, d domain.BracketDetail, _ int) decimal.Decimal {
		return acc.Add(d.IncomeInBracket)
	}, decimal.Zero)
}

// SumTax adds up the tax of a detail list
func SumTax(details []domain.BracketDetail) decimal.Decimal {
	return lo.Reduce(details, func(acc decimal.Decimal, d domain.BracketDetail, _ int) decimal.Decimal {
		return acc.Add(d.TaxInBracket)
	}, decimal.Zero)
}

// BracketTaxCalculator binds a validated tax-facts table to the bracket computation
type BracketTaxCalculator struct {
	Facts  domain.TaxFacts
	Logger Logger
}

// NewBracketTaxCalculator validates the table once so Calculate never has to
func NewBracketTaxCalculator(facts domain.TaxFacts) (*BracketTaxCalculator, error) {
	if err := ValidateTaxFacts(facts); err != nil {
		return nil, err
	}
	return &BracketTaxCalculator{Facts: facts, Logger: NopLogger{}}, nil
}

// SetLogger installs a logger; nil restores the no-op logger
func (c *BracketTaxCalculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// Calculate runs the bracket computation for income and merges the tax facts into the report
func (c *BracketTaxCalculator) Calculate(income decimal.Decimal) domain.TaxReport {
	result := CalculateTaxDetails(income, c.Facts.StandardDeduction, c.Facts.Brackets)

	c.Logger.Debugf("tax %d/%s: income=%s taxable=%s brackets=%d total=%s marginal=%s",
		c.Facts.TaxYear, c.Facts.FilingStatus, income.StringFixed(2), result.TaxableIncome.StringFixed(2),
		len(result.BracketDetails), result.TotalTaxOwed.StringFixed(2), result.MarginalTaxRate.String())

	return domain.TaxReport{
		TaxYear:           c.Facts.TaxYear,
		FilingStatus:      c.Facts.FilingStatus,
		StandardDeduction: c.Facts.StandardDeduction,
		Income:            income,
		TaxResult:         result,
	}
}
