package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rgehrsitz/taxview/internal/domain"
)

const (
	pdfMargin       = 15.0
	pdfContentWidth = 215.9 - 2*pdfMargin // US Letter
)

// PDFFormatter renders a one-page PDF with the summary and bracket table
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(fmt.Sprintf("%d Federal Income Tax Breakdown", report.TaxYear), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 10, "Federal Income Tax Breakdown", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Tax year %d, filing status %s", report.TaxYear, report.FilingStatus), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	summary := [][2]string{
		{"Income", FormatCurrency(report.Income)},
		{"Standard Deduction", FormatCurrency(report.StandardDeduction)},
		{"Taxable Income", FormatCurrency(report.TaxableIncome)},
		{"Total Tax Owed", FormatCurrency(report.TotalTaxOwed)},
		{"Effective Rate", fmt.Sprintf("%s (%s)", FormatPercentage(report.EffectiveTaxRate), FormatCurrency(report.EffectiveDollars()))},
		{"Marginal Rate", fmt.Sprintf("%s (%s)", FormatPercentage(report.MarginalTaxRate), FormatCurrency(report.MarginalDollars()))},
		{"Money Kept", fmt.Sprintf("%s (%s)", FormatCurrency(report.MoneyKept()), FormatPercentage(report.PercentKept()))},
	}
	pdf.SetTextColor(50, 50, 50)
	for _, row := range summary {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(60, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(pdfContentWidth-60, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, "Bracket Breakdown", "", 1, "L", false, 0, "")

	if len(report.BracketDetails) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(pdfContentWidth, 7, "No taxable income: nothing falls into any bracket.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{20, 66, 35, 35, 29.9}
		headers := []string{"Rate", "Range", "Income Slice", "Tax", "Share"}
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(242, 242, 242)
		pdf.SetTextColor(50, 50, 50)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, d := range report.BracketDetails {
			cells := []string{
				FormatRate(d.Rate),
				formatRange(d),
				FormatCurrency(d.IncomeInBracket),
				FormatCurrency(d.TaxInBracket),
				d.ShareOf(report.TaxableIncome).StringFixed(1) + "%",
			}
			for i, cell := range cells {
				align := "R"
				if i < 2 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	for _, a := range DefaultAssumptions {
		pdf.MultiCell(pdfContentWidth, 4.5, "- "+a, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
