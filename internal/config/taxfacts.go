package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/taxview/internal/calculation"
	"github.com/rgehrsitz/taxview/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed taxfacts_2024_single.yaml
var defaultTaxFacts []byte

// TaxFactsParser loads and validates tax-facts tables
type TaxFactsParser struct{}

// NewTaxFactsParser creates a new tax facts parser
func NewTaxFactsParser() *TaxFactsParser {
	return &TaxFactsParser{}
}

// LoadFromFile loads a tax-facts table from a YAML (or JSON) file
func (p *TaxFactsParser) LoadFromFile(filename string) (*domain.TaxFacts, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	facts, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return facts, nil
}

// Parse decodes and validates a tax-facts document
func (p *TaxFactsParser) Parse(data []byte) (*domain.TaxFacts, error) {
	var facts domain.TaxFacts
	if err := yaml.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := calculation.ValidateTaxFacts(facts); err != nil {
		return nil, fmt.Errorf("tax facts validation failed: %w", err)
	}

	return &facts, nil
}

// Default returns the embedded 2024 single-filer table
func (p *TaxFactsParser) Default() *domain.TaxFacts {
	facts, err := p.Parse(defaultTaxFacts)
	if err != nil {
		// the embedded table is covered by tests
		panic(fmt.Sprintf("embedded tax facts are invalid: %v", err))
	}
	return facts
}

// Load returns the table at filename, or the embedded default when filename is empty
func (p *TaxFactsParser) Load(filename string) (*domain.TaxFacts, error) {
	if filename == "" {
		return p.Default(), nil
	}
	return p.LoadFromFile(filename)
}

// SaveTaxFacts writes a table back out as YAML
func SaveTaxFacts(facts *domain.TaxFacts, filename string) error {
	data, err := yaml.Marshal(facts)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
