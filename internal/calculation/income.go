package calculation

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidIncome is the cause of every ParseIncome failure
var ErrInvalidIncome = errors.New("Income must be a non-negative number")

// MaxIncome is the largest accepted income. It bounds magnitude only; see
// MaxIncomeScale for precision.
var MaxIncome = decimal.New(1, 15)

// MaxIncomeScale is the most decimal places an income may carry. Exponent
// notation like 1e-3000000 would otherwise force every later sum to rescale
// to that many digits.
const MaxIncomeScale = 6

// ParseIncome reads a user-entered income. Surrounding whitespace is ignored
// and an empty value counts as zero.
func ParseIncome(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	income, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidIncome, "parse %q", raw)
	}
	if income.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrInvalidIncome, "negative income %s", raw)
	}
	if income.IsZero() {
		return decimal.Zero, nil
	}
	// Checked before any arithmetic: comparing against MaxIncome rescales too
	if income.Exponent() < -MaxIncomeScale {
		return decimal.Zero, errors.Wrapf(ErrInvalidIncome, "income %s has more than %d decimal places", raw, MaxIncomeScale)
	}
	if income.Exponent() > MaxIncome.Exponent() {
		return decimal.Zero, errors.Wrapf(ErrInvalidIncome, "income %s out of range", raw)
	}
	if income.GreaterThan(MaxIncome) {
		return decimal.Zero, errors.Wrapf(ErrInvalidIncome, "income %s out of range", raw)
	}
	return income, nil
}
