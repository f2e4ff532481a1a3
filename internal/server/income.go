package server

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/shopspring/decimal"
)

// Client input errors. Both map to 400; the calculation itself never fails.
var (
	ErrMissingIncome = errors.New("Missing income parameter")
	ErrInvalidIncome = calculation.ErrInvalidIncome
)

// ParseIncome reads the income query parameter. An empty value counts as zero.
func ParseIncome(query url.Values) (decimal.Decimal, error) {
	values, ok := query["income"]
	if !ok || len(values) == 0 {
		return decimal.Zero, ErrMissingIncome
	}
	return calculation.ParseIncome(values[0])
}

// IsClientError reports whether err came from bad request input
func IsClientError(err error) bool {
	cause := errors.Cause(err)
	return cause == ErrMissingIncome || cause == ErrInvalidIncome
}

// ClientMessage is the message shown to the caller for a client error
func ClientMessage(err error) string {
	return errors.Cause(err).Error()
}
