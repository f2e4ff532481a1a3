package domain

import (
	"github.com/shopspring/decimal"
)

// TaxFacts is the versioned tax-facts table for one tax year and filing status.
// It is loaded from a taxfacts YAML file and handed to the calculator as a parameter.
type TaxFacts struct {
	TaxYear           int             `yaml:"tax_year" json:"taxYear"`
	FilingStatus      string          `yaml:"filing_status" json:"filingStatus"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
	Source            string          `yaml:"source,omitempty" json:"source,omitempty"`
}

// TaxBracket is one marginal bracket. The lower bound is implied by the
// previous bracket's upper bound; a nil Max marks the unbounded top bracket.
type TaxBracket struct {
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
	Max  *decimal.Decimal `yaml:"max" json:"max"`
}

// IsUnbounded reports whether the bracket has no ceiling
func (b TaxBracket) IsUnbounded() bool {
	return b.Max == nil
}

// NewBracket builds a bounded bracket from plain numbers
func NewBracket(rate float64, max int64) TaxBracket {
	upper := decimal.NewFromInt(max)
	return TaxBracket{Rate: decimal.NewFromFloat(rate), Max: &upper}
}

// NewTopBracket builds the unbounded top bracket
func NewTopBracket(rate float64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate)}
}
