package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/taxview/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline stacked bar chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"bracket": formatRange,
	"height":  func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
}).Parse(htmlTemplateSource))

type htmlBar struct {
	Label    string
	Tax      float64
	TakeHome float64
}

func (h HTMLFormatter) Format(report *domain.TaxReport) ([]byte, error) {
	chart := NewStackedBarChart(report.BracketDetails, report.TaxableIncome)

	var bars []htmlBar
	for i, hgt := range chart.BarHeights() {
		bars = append(bars, htmlBar{Label: chart.Labels[i], Tax: hgt[0], TakeHome: hgt[1]})
	}

	data := struct {
		*domain.TaxReport
		Bars        []htmlBar
		Assumptions []string
	}{report, bars, DefaultAssumptions}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
