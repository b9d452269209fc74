package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/parquet"
	"github.com/huangsam/shiftfit/schema"
)

// summaryLabels is the display order of label counts.
var summaryLabels = []schema.EfficiencyLabel{
	schema.UnderstaffedLabel,
	schema.UnstaffedLabel,
	schema.BalancedLabel,
	schema.OverstaffedLabel,
	schema.IdleLabel,
}

// PrintEfficiencyResults outputs covers-per-staff ratios, dispatching based on the output format configured.
func PrintEfficiencyResults(results []schema.EfficiencyResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONEfficiency(w, results)
		}, "Wrote JSON efficiency")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVEfficiency(w, results, fmtFloat)
		}, "Wrote CSV efficiency")
	case schema.ParquetOut:
		var cells []parquet.HourlyCell
		for _, r := range results {
			cells = append(cells, parquet.MatrixCells(schema.DemandMatrix, r.Scenario, r.Demand)...)
			cells = append(cells, parquet.MatrixCells(schema.StaffingMatrix, r.Scenario, r.Staffing)...)
			cells = append(cells, parquet.EfficiencyCells(r)...)
		}
		return writeParquetCells(cfg.OutputFile, cells)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEfficiencyTables(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeJSONEfficiency writes demand, staffing, ratios and labels per scenario.
func writeJSONEfficiency(w io.Writer, results []schema.EfficiencyResult) error {
	type jsonEfficiency struct {
		Scenario string                   `json:"scenario"`
		Demand   schema.MatrixView        `json:"demand"`
		Staffing schema.MatrixView        `json:"staffing"`
		Ratio    schema.MatrixView        `json:"ratio"`
		Labels   map[string][]string      `json:"labels"`
		Summary  schema.EfficiencySummary `json:"summary"`
	}
	output := make([]jsonEfficiency, len(results))
	for i, r := range results {
		labels := make(map[string][]string, len(schema.DayOrder))
		for d, day := range schema.DayOrder {
			row := make([]string, len(r.Labels[d]))
			for j, l := range r.Labels[d] {
				row[j] = string(l)
			}
			labels[day.String()] = row
		}
		output[i] = jsonEfficiency{
			Scenario: r.Scenario,
			Demand:   r.Demand.View(schema.DemandMatrix, r.Scenario),
			Staffing: r.Staffing.View(schema.StaffingMatrix, r.Scenario),
			Ratio:    r.Ratio.View(schema.EfficiencyMatrix, r.Scenario),
			Labels:   labels,
			Summary:  r.Summary,
		}
	}
	return writeJSON(w, output)
}

// writeCSVEfficiency writes the three matrices of every scenario in long format.
func writeCSVEfficiency(w io.Writer, results []schema.EfficiencyResult, fmtFloat func(float64) string) error {
	whole := createFormatter(0)
	return writeCSVWithHeader(w, matrixCSVHeader, func(cw *csv.Writer) error {
		for _, r := range results {
			if err := writeMatrixCSVRows(cw, schema.DemandMatrix, r.Scenario, r.Demand, whole, nil); err != nil {
				return err
			}
			if err := writeMatrixCSVRows(cw, schema.StaffingMatrix, r.Scenario, r.Staffing, whole, nil); err != nil {
				return err
			}
			label := func(i, j int) string { return string(r.Labels[i][j]) }
			if err := writeMatrixCSVRows(cw, schema.EfficiencyMatrix, r.Scenario, r.Ratio, fmtFloat, label); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeEfficiencyTables prints one ratio grid per scenario. Each cell shows
// the ratio followed by the initial of its label.
func writeEfficiencyTables(w io.Writer, results []schema.EfficiencyResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	perChunk := getHoursPerChunk(cfg)

	for _, r := range results {
		mt := matrixTable{
			title:  fmt.Sprintf("Covers per staff member [%s]", r.Scenario),
			matrix: r.Ratio,
			cell: func(i, j int) string {
				return formatRatioCell(r.Ratio.Values[i][j], r.Labels[i][j], fmtFloat, cfg.UseColors)
			},
		}
		if err := writeMatrixTable(w, mt, perChunk); err != nil {
			return err
		}
		if err := writeEfficiencySummary(w, r, fmtFloat, cfg.UseColors); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "Legend: U=Understaffed X=Unstaffed B=Balanced O=Overstaffed .=Idle"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Efficiency computed for %d scenarios in %v (balanced band %s to %s covers per staff)\n",
		len(results), duration, fmtFloat(cfg.Thresholds.Low), fmtFloat(cfg.Thresholds.High))
	return err
}

// formatRatioCell renders a ratio with its label initial. Unstaffed and idle
// cells have no meaningful ratio and show a dash.
func formatRatioCell(ratio float64, label schema.EfficiencyLabel, fmtFloat func(float64) string, useColors bool) string {
	value := fmtFloat(ratio)
	if label == schema.UnstaffedLabel || label == schema.IdleLabel {
		value = "-"
	}
	initial := contract.GetLabelInitial(label)
	if useColors {
		initial = contract.LabelColor(label).Sprint(initial)
	}
	return value + " " + initial
}

// writeEfficiencySummary prints label counts, the peak cell and the mean ratio.
func writeEfficiencySummary(w io.Writer, r schema.EfficiencyResult, fmtFloat func(float64) string, useColors bool) error {
	if _, err := fmt.Fprint(w, "Hours:"); err != nil {
		return err
	}
	for _, l := range summaryLabels {
		name := string(l)
		if useColors {
			name = contract.GetColorLabel(l)
		}
		if _, err := fmt.Fprintf(w, " %s %d", name, r.Summary.Counts[l]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if r.Summary.PeakDay == "" {
		_, err := fmt.Fprintln(w, "No staffed hours with demand")
		return err
	}
	_, err := fmt.Fprintf(w, "Peak %s covers per staff on %s at %s, mean %s\n",
		fmtFloat(r.Summary.PeakRatio), r.Summary.PeakDay, r.Summary.PeakHour, fmtFloat(r.Summary.MeanRatio))
	return err
}
