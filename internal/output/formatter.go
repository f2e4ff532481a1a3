package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/taxview/internal/domain"
)

// Formatter renders a tax report in one output format
type Formatter interface {
	Name() string
	Format(report *domain.TaxReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.TaxReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.TaxReport) ([]byte, error) {
	return f.F(report)
}

var formatters = map[string]Formatter{}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(JSONFormatter{Pretty: true})
	register(CSVSummarizer{})
	register(HTMLFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the registered formatter or nil
func GetFormatterByName(name string) Formatter {
	return formatters[name]
}

// FormatterNames lists registered formatter names in sorted order
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted formats the report and writes it to tax_report_<timestamp>.<ext>
func WriteFormatted(f Formatter, report *domain.TaxReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter: %w", f.Name(), err)
	}

	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
