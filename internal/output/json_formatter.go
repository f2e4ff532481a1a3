package output

import (
	"encoding/json"

	"github.com/rgehrsitz/taxview/internal/domain"
	"github.com/samber/lo"
)

// Payload is the response shape consumed by the web front end. Amounts are
// JSON numbers rather than decimal strings.
type Payload struct {
	TaxYear           int              `json:"taxYear"`
	FilingStatus      string           `json:"filingStatus"`
	StandardDeduction float64          `json:"standardDeduction"`
	Income            float64          `json:"income"`
	TaxableIncome     float64          `json:"taxableIncome"`
	BracketDetails    []BracketPayload `json:"bracketDetails"`
	TotalTaxOwed      float64          `json:"totalTaxOwed"`
	EffectiveTaxRate  float64          `json:"effectiveTaxRate"`
	MarginalTaxRate   float64          `json:"marginalTaxRate"`
}

// BracketPayload is one bracketDetails entry; EndingRange is null for the top bracket
type BracketPayload struct {
	BracketRate         float64  `json:"bracketRate"`
	StartingRange       float64  `json:"startingRange"`
	EndingRange         *float64 `json:"endingRange"`
	IncomeInThisBracket float64  `json:"incomeInThisBracket"`
	TaxForThisBracket   float64  `json:"taxForThisBracket"`
}

// NewPayload converts a report into its wire shape
func NewPayload(report *domain.TaxReport) Payload {
	return Payload{
		TaxYear:           report.TaxYear,
		FilingStatus:      report.FilingStatus,
		StandardDeduction: report.StandardDeduction.InexactFloat64(),
		Income:            report.Income.InexactFloat64(),
		TaxableIncome:     report.TaxableIncome.InexactFloat64(),
		BracketDetails: lo.Map(report.BracketDetails, func(d domain.BracketDetail, _ int) BracketPayload {
			bp := BracketPayload{
				BracketRate:         d.Rate.InexactFloat64(),
				StartingRange:       d.LowerBound.InexactFloat64(),
				IncomeInThisBracket: d.IncomeInBracket.InexactFloat64(),
				TaxForThisBracket:   d.TaxInBracket.InexactFloat64(),
			}
			if d.UpperBound != nil {
				upper := d.UpperBound.InexactFloat64()
				bp.EndingRange = &upper
			}
			return bp
		}),
		TotalTaxOwed:     report.TotalTaxOwed.InexactFloat64(),
		EffectiveTaxRate: report.EffectiveTaxRate.InexactFloat64(),
		MarginalTaxRate:  report.MarginalTaxRate.InexactFloat64(),
	}
}

// JSONFormatter renders the response payload
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	payload := NewPayload(report)
	if jf.Pretty {
		return json.MarshalIndent(payload, "", "  ")
	}
	return json.Marshal(payload)
}
