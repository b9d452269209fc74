package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/parquet"
	"github.com/huangsam/shiftfit/schema"
)

// PrintCoverageResults outputs staffing coverage, dispatching based on the output format configured.
func PrintCoverageResults(results []schema.CoverageResult, cfg *contract.Config, duration time.Duration) error {
	whole := createFormatter(0)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONCoverage(w, results)
		}, "Wrote JSON coverage")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, matrixCSVHeader, func(cw *csv.Writer) error {
				for _, r := range results {
					if err := writeMatrixCSVRows(cw, schema.StaffingMatrix, r.Scenario, r.Staffing, whole, nil); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV coverage")
	case schema.ParquetOut:
		var cells []parquet.HourlyCell
		for _, r := range results {
			cells = append(cells, parquet.MatrixCells(schema.StaffingMatrix, r.Scenario, r.Staffing)...)
		}
		return writeParquetCells(cfg.OutputFile, cells)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCoverageTables(w, results, cfg, duration)
		}, "Wrote table")
	}
}

// writeJSONCoverage writes each scenario with a labeled staffing matrix.
func writeJSONCoverage(w io.Writer, results []schema.CoverageResult) error {
	type jsonCoverage struct {
		Scenario   string               `json:"scenario"`
		Roles      []string             `json:"roles,omitempty"`
		Staffing   schema.MatrixView    `json:"staffing"`
		StaffHours float64              `json:"staff_hours"`
		Stats      schema.CoverageStats `json:"stats"`
	}
	output := make([]jsonCoverage, len(results))
	for i, r := range results {
		output[i] = jsonCoverage{
			Scenario:   r.Scenario,
			Roles:      r.Roles,
			Staffing:   r.Staffing.View(schema.StaffingMatrix, r.Scenario),
			StaffHours: r.Staffing.Total(),
			Stats:      r.Stats,
		}
	}
	return writeJSON(w, output)
}

// writeCoverageTables prints the concurrent staff count of every scenario.
func writeCoverageTables(w io.Writer, results []schema.CoverageResult, cfg *contract.Config, duration time.Duration) error {
	perChunk := getHoursPerChunk(cfg)
	whole := createFormatter(0)

	for _, r := range results {
		title := fmt.Sprintf("Staffing coverage [%s]", r.Scenario)
		if len(r.Roles) > 0 {
			title += fmt.Sprintf(" roles: %s", strings.Join(r.Roles, ", "))
		}
		if err := writeMatrixTable(w, valueTable(title, r.Staffing, whole, true), perChunk); err != nil {
			return err
		}
		st := r.Stats
		if _, err := fmt.Fprintf(w, "Shifts: %d total, %d kept (overnight %d, zero-length %d, malformed %d, other roles %d). Staff hours: %s\n",
			st.Total, st.Kept, st.Overnight, st.ZeroLength, st.Malformed, st.RoleFiltered, whole(r.Staffing.Total())); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Coverage computed for %d scenarios in %v\n", len(results), duration)
	return err
}
