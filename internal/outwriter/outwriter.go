// Package outwriter renders engine results as tables, CSV, JSON or Parquet.
package outwriter

import (
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProfile prints a learned typical week and, when requested, its daypart shapes.
func (ow *OutWriter) WriteProfile(result schema.ProfileResult, cfg *contract.Config, duration time.Duration) error {
	return PrintProfileResults(result, cfg, duration)
}

// WriteDemand prints the hourly demand of each scenario.
func (ow *OutWriter) WriteDemand(results []schema.DemandResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDemandResults(results, cfg, duration)
}

// WriteCoverage prints the staffing coverage of each scenario.
func (ow *OutWriter) WriteCoverage(results []schema.CoverageResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCoverageResults(results, cfg, duration)
}

// WriteEfficiency prints the covers-per-staff comparison of each scenario.
func (ow *OutWriter) WriteEfficiency(results []schema.EfficiencyResult, cfg *contract.Config, duration time.Duration) error {
	return PrintEfficiencyResults(results, cfg, duration)
}
