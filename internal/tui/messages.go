package tui

import (
	"github.com/rgehrsitz/esnet/internal/domain"
)

// Scene represents the screens of the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneChart
)

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneChart:
		return "Revenue Chart"
	default:
		return "Unknown"
	}
}

// CalculationCompleteMsg carries the results of a recalculation. Seq
// identifies the parameter revision it was computed for.
type CalculationCompleteMsg struct {
	Seq     int
	Results []domain.TaxCalculationResult
	Err     error
}

// SweepCompleteMsg carries the revenue sweep and crossovers for the chart
type SweepCompleteMsg struct {
	Seq        int
	Points     []domain.SweepPoint
	Crossovers []domain.CrossoverPoint
	Err        error
}
