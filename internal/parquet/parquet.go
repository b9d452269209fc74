// Package parquet exports engine matrices and run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/shiftfit/schema"
	"github.com/parquet-go/parquet-go"
)

// HourlyCell is one cell of a day × hour matrix in long format.
type HourlyCell struct {
	// Scenario names the forecast/rota pair the matrix belongs to (optional)
	Scenario string `parquet:"scenario,snappy"`

	// Kind is the matrix kind: history, demand, staffing or efficiency
	Kind string `parquet:"kind,snappy,dict"`

	// Day is the weekday name
	Day string `parquet:"day,snappy,dict"`

	// DayIndex is the row position, 0 for Monday
	DayIndex int32 `parquet:"day_index,snappy"`

	// Hour is the service hour; values past 23 belong to the previous day
	Hour int32 `parquet:"hour,snappy"`

	// HourLabel renders the hour as HH:00
	HourLabel string `parquet:"hour_label,snappy,dict"`

	// Value holds covers, staff count or covers per staff member
	Value float64 `parquet:"value,snappy"`

	// Label is the efficiency label (efficiency matrices only)
	Label *string `parquet:"label,optional,snappy"`
}

// Run maps to the shiftfit_runs history table.
type Run struct {
	RunID         string     `parquet:"run_id,snappy"`
	Command       string     `parquet:"command,snappy,dict"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int64     `parquet:"run_duration_ms,optional,snappy"`
	ScenarioCount int32      `parquet:"scenario_count,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// ScenarioResult maps to the shiftfit_scenario_results history table.
type ScenarioResult struct {
	RunID             string  `parquet:"run_id,snappy"`
	Scenario          string  `parquet:"scenario,snappy,dict"`
	DemandTotal       float64 `parquet:"demand_total,snappy"`
	StaffingTotal     float64 `parquet:"staffing_total,snappy"`
	PeakRatio         float64 `parquet:"peak_ratio,snappy"`
	PeakDay           string  `parquet:"peak_day,snappy,dict"`
	PeakHour          string  `parquet:"peak_hour,snappy,dict"`
	MeanRatio         float64 `parquet:"mean_ratio,snappy"`
	UnderstaffedHours int32   `parquet:"understaffed_hours,snappy"`
	OverstaffedHours  int32   `parquet:"overstaffed_hours,snappy"`
	BalancedHours     int32   `parquet:"balanced_hours,snappy"`
	UnstaffedHours    int32   `parquet:"unstaffed_hours,snappy"`
}

// MatrixCells flattens a matrix into one row per cell, days in DayOrder.
func MatrixCells(kind schema.MatrixKind, scenario string, m schema.Matrix) []HourlyCell {
	cells := make([]HourlyCell, 0, len(schema.DayOrder)*len(m.Hours))
	for i, day := range schema.DayOrder {
		for j, h := range m.Hours {
			cells = append(cells, HourlyCell{
				Scenario:  scenario,
				Kind:      string(kind),
				Day:       day.String(),
				DayIndex:  int32(i),
				Hour:      int32(h),
				HourLabel: schema.HourLabel(h),
				Value:     m.Values[i][j],
			})
		}
	}
	return cells
}

// EfficiencyCells flattens the ratio matrix of a result and attaches each cell's label.
func EfficiencyCells(res schema.EfficiencyResult) []HourlyCell {
	cells := MatrixCells(schema.EfficiencyMatrix, res.Scenario, res.Ratio)
	width := len(res.Ratio.Hours)
	for k := range cells {
		i, j := k/width, k%width
		if j < len(res.Labels[i]) {
			label := string(res.Labels[i][j])
			cells[k].Label = &label
		}
	}
	return cells
}

// WriteHourlyCells writes cells to w in Parquet format.
func WriteHourlyCells(w io.Writer, cells []HourlyCell) error {
	return writeRows(w, cells)
}

// WriteRunsParquet writes run history rows to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(outputPath, data)
}

// WriteScenarioResultsParquet writes scenario history rows to a Parquet file.
func WriteScenarioResultsParquet(data []ScenarioResult, outputPath string) error {
	return writeFile(outputPath, data)
}

func writeFile[T any](outputPath string, data []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// writeRows derives the schema from T's struct tags.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts stored runs for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:         r.RunID,
			Command:       r.Command,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			ScenarioCount: int32(r.ScenarioCount),
		}
		if r.ConfigParams != "" {
			params := r.ConfigParams
			result[i].ConfigParams = &params
		}
	}
	return result
}

// ConvertScenarioRecords converts stored scenario summaries for Parquet export.
func ConvertScenarioRecords(records []schema.ScenarioRecord) []ScenarioResult {
	result := make([]ScenarioResult, len(records))
	for i, r := range records {
		result[i] = ScenarioResult{
			RunID:             r.RunID,
			Scenario:          r.Scenario,
			DemandTotal:       r.DemandTotal,
			StaffingTotal:     r.StaffingTotal,
			PeakRatio:         r.PeakRatio,
			PeakDay:           r.PeakDay,
			PeakHour:          r.PeakHour,
			MeanRatio:         r.MeanRatio,
			UnderstaffedHours: int32(r.UnderstaffedHours),
			OverstaffedHours:  int32(r.OverstaffedHours),
			BalancedHours:     int32(r.BalancedHours),
			UnstaffedHours:    int32(r.UnstaffedHours),
		}
	}
	return result
}
