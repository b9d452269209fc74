package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/shiftfit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// matrixCSVHeader is the long-format header shared by every matrix CSV.
var matrixCSVHeader = []string{"scenario", "kind", "day", "hour", "value", "label"}

// cellFormatter renders the cell at row i, column j.
type cellFormatter func(i, j int) string

// matrixTable describes one day × hour table.
type matrixTable struct {
	title  string
	matrix schema.Matrix
	cell   cellFormatter
	total  func(i int) string // nil hides the total column
}

// writeMatrixTable renders a matrix as one or more tables of at most
// hoursPerChunk hour columns. The total column is printed with the last chunk.
func writeMatrixTable(w io.Writer, mt matrixTable, hoursPerChunk int) error {
	labels := mt.matrix.Labels()
	chunks := chunkColumns(len(labels), hoursPerChunk)

	for n, chunk := range chunks {
		lo, hi := chunk[0], chunk[1]
		last := n == len(chunks)-1

		title := mt.title
		if len(chunks) > 1 {
			title = fmt.Sprintf("%s (%s-%s)", mt.title, labels[lo], labels[hi-1])
		}
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		headers := append([]string{"Day"}, labels[lo:hi]...)
		if last && mt.total != nil {
			headers = append(headers, "Total")
		}
		table.Header(headers)
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Header.Formatting.AutoFormat = tw.Off
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for i, day := range schema.DayOrder {
			row := []string{day.String()}
			for j := lo; j < hi; j++ {
				row = append(row, mt.cell(i, j))
			}
			if last && mt.total != nil {
				row = append(row, mt.total(i))
			}
			data = append(data, row)
		}

		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// valueTable builds a matrixTable that prints every cell with fmtFloat.
func valueTable(title string, m schema.Matrix, fmtFloat func(float64) string, withTotal bool) matrixTable {
	mt := matrixTable{
		title:  title,
		matrix: m,
		cell:   func(i, j int) string { return fmtFloat(m.Values[i][j]) },
	}
	if withTotal {
		mt.total = func(i int) string { return fmtFloat(m.RowTotal(schema.DayOrder[i])) }
	}
	return mt
}

// writeMatrixCSVRows appends a matrix in long format, one row per cell.
// label may be nil.
func writeMatrixCSVRows(w *csv.Writer, kind schema.MatrixKind, scenario string, m schema.Matrix, fmtFloat func(float64) string, label func(i, j int) string) error {
	for i, day := range schema.DayOrder {
		for j, h := range m.Hours {
			rec := []string{scenario, string(kind), day.String(), schema.HourLabel(h), fmtFloat(m.Values[i][j]), ""}
			if label != nil {
				rec[5] = label(i, j)
			}
			if err := w.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}
	return nil
}
