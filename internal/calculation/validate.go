package calculation

import (
	"fmt"

	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/shopspring/decimal"
)

// ValidateBrackets checks that a bracket table is usable by CalculateTaxDetails.
// A malformed table is a configuration defect, so this runs at load time only.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one tax bracket is required")
	}

	one := decimal.NewFromInt(1)
	previous := decimal.Zero
	for i, b := range brackets {
		if !b.Rate.IsPositive() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("bracket %d: rate %s must be in (0, 1]", i, b.Rate.String())
		}

		last := i == len(brackets)-1
		if b.IsUnbounded() {
			if !last {
				return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("bracket %d: the last bracket must be unbounded", i)
		}
		if !b.Max.GreaterThan(previous) {
			return fmt.Errorf("bracket %d: upper bound %s must be greater than %s", i, b.Max.String(), previous.String())
		}
		previous = *b.Max
	}

	return nil
}

// ValidateTaxFacts validates the whole tax-facts table
func ValidateTaxFacts(facts domain.TaxFacts) error {
	if facts.TaxYear <= 0 {
		return fmt.Errorf("tax year is required")
	}
	if facts.FilingStatus == "" {
		return fmt.Errorf("filing status is required")
	}
	if facts.StandardDeduction.IsNegative() {
		return fmt.Errorf("standard deduction cannot be negative")
	}
	if err := ValidateBrackets(facts.Brackets); err != nil {
		return fmt.Errorf("invalid brackets: %w", err)
	}
	return nil
}
