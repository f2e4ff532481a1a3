package domain

import (
	"github.com/shopspring/decimal"
)

// BracketDetail records the slice of taxable income that fell into one bracket
type BracketDetail struct {
	Rate            decimal.Decimal
	LowerBound      decimal.Decimal
	UpperBound      *decimal.Decimal // nil for the top bracket
	IncomeInBracket decimal.Decimal
	TaxInBracket    decimal.Decimal
}

// TakeHome is the part of the slice left after tax, floored at zero
func (d BracketDetail) TakeHome() decimal.Decimal {
	return decimal.Max(decimal.Zero, d.IncomeInBracket.Sub(d.TaxInBracket))
}

// ShareOf returns the slice as a percentage of taxable income
func (d BracketDetail) ShareOf(taxableIncome decimal.Decimal) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	return d.IncomeInBracket.Div(taxableIncome).Mul(decimal.NewFromInt(100))
}

// Headroom is how much more income fits in this bracket before the next rate
// applies. The unbounded top bracket has no headroom and reports false.
func (d BracketDetail) Headroom() (decimal.Decimal, bool) {
	if d.UpperBound == nil {
		return decimal.Zero, false
	}
	return decimal.Max(decimal.Zero, d.UpperBound.Sub(d.LowerBound).Sub(d.IncomeInBracket)), true
}

// TaxResult is the output of a single bracket tax calculation
type TaxResult struct {
	TaxableIncome    decimal.Decimal
	BracketDetails   []BracketDetail
	TotalTaxOwed     decimal.Decimal
	EffectiveTaxRate decimal.Decimal
	MarginalTaxRate  decimal.Decimal
}

// TaxReport merges the static tax facts with a calculation for one income
type TaxReport struct {
	TaxYear           int
	FilingStatus      string
	StandardDeduction decimal.Decimal
	Income            decimal.Decimal
	TaxResult
}

// MoneyKept is income minus total tax owed
func (r TaxReport) MoneyKept() decimal.Decimal {
	return r.Income.Sub(r.TotalTaxOwed)
}

// PercentKept is the kept fraction of income (0 when income is 0)
func (r TaxReport) PercentKept() decimal.Decimal {
	if !r.Income.IsPositive() {
		return decimal.Zero
	}
	return r.MoneyKept().Div(r.Income)
}

// EffectiveDollars is income multiplied by the effective rate
func (r TaxReport) EffectiveDollars() decimal.Decimal {
	return r.Income.Mul(r.EffectiveTaxRate)
}

// MarginalDollars is income multiplied by the marginal rate
func (r TaxReport) MarginalDollars() decimal.Decimal {
	return r.Income.Mul(r.MarginalTaxRate)
}
