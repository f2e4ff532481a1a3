package tui

import (
	"github.com/rgehrsitz/taxview/internal/domain"
)

// Message types for the Bubble Tea update cycle

// CalculationCompleteMsg carries the result of one recalculation.
// Seq lets the model drop results that a newer request has superseded.
type CalculationCompleteMsg struct {
	Seq    int
	Input  string
	Report *domain.TaxReport
	Err    error
}

// ToggleBreakdownMsg shows or hides the bracket table and chart
type ToggleBreakdownMsg struct{}
