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

// shapeKind tags daypart shape rows in CSV and Parquet output.
const shapeKind schema.MatrixKind = "shape"

// shapePrecision is the number of decimals used for shape proportions.
const shapePrecision = 4

// PrintProfileResults outputs a learned profile, dispatching based on the output format configured.
func PrintProfileResults(result schema.ProfileResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONProfile(w, result)
		}, "Wrote JSON profile")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVProfile(w, result, fmtFloat)
		}, "Wrote CSV profile")
	case schema.ParquetOut:
		cells := parquet.MatrixCells(schema.HistoryMatrix, "", result.History)
		for _, s := range result.Shapes {
			shapeCells := parquet.MatrixCells(shapeKind, s.Daypart.String(), s.Matrix())
			cells = append(cells, shapeCells...)
		}
		return writeParquetCells(cfg.OutputFile, cells)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeJSONProfile writes the profile with a labeled history matrix.
func writeJSONProfile(w io.Writer, result schema.ProfileResult) error {
	type jsonShape struct {
		Daypart string            `json:"daypart"`
		View    schema.MatrixView `json:"proportions"`
	}
	output := struct {
		Store   string            `json:"store"`
		Month   time.Month        `json:"month"`
		Weeks   []schema.ISOWeek  `json:"weeks"`
		Stats   schema.CleanStats `json:"stats"`
		Cached  bool              `json:"cached"`
		History schema.MatrixView `json:"history"`
		Shapes  []jsonShape       `json:"shapes,omitempty"`
	}{
		Store:   result.Store,
		Month:   result.Month,
		Weeks:   result.Weeks,
		Stats:   result.Stats,
		Cached:  result.Cached,
		History: result.History.View(schema.HistoryMatrix, ""),
	}
	for _, s := range result.Shapes {
		output.Shapes = append(output.Shapes, jsonShape{
			Daypart: s.Daypart.String(),
			View:    s.Matrix().View(shapeKind, ""),
		})
	}
	return writeJSON(w, output)
}

// writeCSVProfile writes the history matrix and any shapes in long format.
// Shape rows carry the daypart in the scenario column.
func writeCSVProfile(w io.Writer, result schema.ProfileResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, matrixCSVHeader, func(cw *csv.Writer) error {
		if err := writeMatrixCSVRows(cw, schema.HistoryMatrix, "", result.History, fmtFloat, nil); err != nil {
			return err
		}
		shapeFmt := createFormatter(shapePrecision)
		for _, s := range result.Shapes {
			if err := writeMatrixCSVRows(cw, shapeKind, s.Daypart.String(), s.Matrix(), shapeFmt, nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeProfileTable prints the typical week, the shapes and the cleaning summary.
func writeProfileTable(w io.Writer, result schema.ProfileResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	perChunk := getHoursPerChunk(cfg)

	title := fmt.Sprintf("Typical week for %s", describeStore(result.Store, result.Month))
	if err := writeMatrixTable(w, valueTable(title, result.History, fmtFloat, true), perChunk); err != nil {
		return err
	}

	shapeFmt := createFormatter(shapePrecision)
	for _, s := range result.Shapes {
		shapeTitle := fmt.Sprintf("Shape: %s", s.Daypart)
		if err := writeMatrixTable(w, valueTable(shapeTitle, s.Matrix(), shapeFmt, false), perChunk); err != nil {
			return err
		}
	}

	st := result.Stats
	if _, err := fmt.Fprintf(w, "Rows: %d total, %d kept (voided %d, zero %d, malformed %d, filtered %d, de-spiked %d)\n",
		st.Total, st.Kept, st.Voided, st.ZeroValue, st.Malformed, st.FilteredOut, st.Normalized); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Profile built from %d weeks in %v (cached: %t). Cache backend: %s\n",
		len(result.Weeks), duration, result.Cached, cfg.CacheBackend)
	return err
}

// describeStore renders the store and month filter for titles.
func describeStore(store string, month time.Month) string {
	if store == "" {
		store = "all stores"
	}
	if month == 0 {
		return store
	}
	return fmt.Sprintf("%s, %s", store, month)
}
