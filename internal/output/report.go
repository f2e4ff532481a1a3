package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GenerateReport formats the report and writes it to path, or to stdout when path is empty
func GenerateReport(report *domain.TaxReport, format, path string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(FormatterNames(), ", "))
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FormatCurrency formats an amount as whole US dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + groupThousands(rounded.String())
}

// FormatPercentage formats a fraction (0.08032) as a percentage with one decimal (8.0%)
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(1) + "%"
}

// FormatRate formats a bracket rate as a whole percentage label (12%)
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(0) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
