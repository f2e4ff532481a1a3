package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTaxFactsParser_Default(t *testing.T) {
	facts := NewTaxFactsParser().Default()

	assert.Equal(t, 2024, facts.TaxYear)
	assert.Equal(t, "single", facts.FilingStatus)
	assert.True(t, facts.StandardDeduction.Equal(decimal.NewFromInt(14600)))
	require.Len(t, facts.Brackets, 7)

	expectedMax := []int64{11600, 47150, 100525, 191950, 243725, 609350}
	expectedRate := []string{"0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"}
	for i, b := range facts.Brackets {
		assert.True(t, b.Rate.Equal(decimal.RequireFromString(expectedRate[i])), "bracket %d rate %s", i, b.Rate)
		if i < len(expectedMax) {
			require.NotNil(t, b.Max, "bracket %d should be bounded", i)
			assert.True(t, b.Max.Equal(decimal.NewFromInt(expectedMax[i])), "bracket %d max %s", i, b.Max)
		}
	}
	assert.True(t, facts.Brackets[6].IsUnbounded(), "Top bracket should be unbounded")
}

func TestTaxFactsParser_LoadFromFile(t *testing.T) {
	path := writeFile(t, "facts.yaml", `
tax_year: 2030
filing_status: single
standard_deduction: 10000
brackets:
  - rate: 0.1
    max: 20000
  - rate: 0.3
`)

	facts, err := NewTaxFactsParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, 2030, facts.TaxYear)
	require.Len(t, facts.Brackets, 2)
	assert.True(t, facts.Brackets[1].IsUnbounded(), "Omitted max means unbounded")
}

func TestTaxFactsParser_LoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "facts.json", `{"tax_year": 2024, "filing_status": "single", "standard_deduction": 14600, "brackets": [{"rate": 0.1, "max": 11600}, {"rate": 0.37, "max": null}]}`)

	facts, err := NewTaxFactsParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Len(t, facts.Brackets, 2)
}

func TestTaxFactsParser_LoadFromFile_Errors(t *testing.T) {
	parser := NewTaxFactsParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.yaml", "tax_year: [unterminated")
	_, err = parser.LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse YAML")

	path = writeFile(t, "gap.yaml", `
tax_year: 2024
filing_status: single
standard_deduction: 14600
brackets:
  - { rate: 0.10, max: 11600 }
  - { rate: 0.12, max: 47150 }
`)
	_, err = parser.LoadFromFile(path)
	assert.ErrorContains(t, err, "tax facts validation failed")
	assert.ErrorContains(t, err, "last bracket must be unbounded")
}

func TestTaxFactsParser_Load(t *testing.T) {
	parser := NewTaxFactsParser()

	facts, err := parser.Load("")
	require.NoError(t, err)
	assert.Equal(t, 2024, facts.TaxYear, "Empty path uses the embedded table")

	_, err = parser.Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestSaveTaxFacts_RoundTrip(t *testing.T) {
	parser := NewTaxFactsParser()
	path := filepath.Join(t.TempDir(), "saved.yaml")

	require.NoError(t, SaveTaxFacts(parser.Default(), path))
	loaded, err := parser.LoadFromFile(path)

	require.NoError(t, err)
	assert.Len(t, loaded.Brackets, 7)
	assert.True(t, loaded.Brackets[6].IsUnbounded())
}
