package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/taxview/internal/domain"
)

// CSVSummarizer writes one row per bracket that received income, plus a total row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TaxReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"BracketRate", "StartingRange", "EndingRange", "IncomeInBracket", "TaxForBracket", "TakeHome", "SharePercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, d := range report.BracketDetails {
		ending := ""
		if d.UpperBound != nil {
			ending = d.UpperBound.StringFixed(2)
		}
		row := []string{
			d.Rate.String(),
			d.LowerBound.StringFixed(2),
			ending,
			d.IncomeInBracket.StringFixed(2),
			d.TaxInBracket.StringFixed(2),
			d.TakeHome().StringFixed(2),
			d.ShareOf(report.TaxableIncome).StringFixed(1),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	total := []string{"Total", "", "", report.TaxableIncome.StringFixed(2), report.TotalTaxOwed.StringFixed(2), "", ""}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
