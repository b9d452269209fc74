package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/parquet"
	"github.com/huangsam/shiftfit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDemandResults outputs hourly demand, dispatching based on the output format configured.
func PrintDemandResults(results []schema.DemandResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONDemand(w, results)
		}, "Wrote JSON demand")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, matrixCSVHeader, func(cw *csv.Writer) error {
				for _, r := range results {
					if err := writeMatrixCSVRows(cw, schema.DemandMatrix, r.Scenario, r.Demand, fmtFloat, nil); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV demand")
	case schema.ParquetOut:
		var cells []parquet.HourlyCell
		for _, r := range results {
			cells = append(cells, parquet.MatrixCells(schema.DemandMatrix, r.Scenario, r.Demand)...)
		}
		return writeParquetCells(cfg.OutputFile, cells)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDemandTables(w, results, cfg, duration)
		}, "Wrote table")
	}
}

// writeJSONDemand writes each scenario with a labeled demand matrix.
func writeJSONDemand(w io.Writer, results []schema.DemandResult) error {
	type jsonDemand struct {
		Scenario       string               `json:"scenario"`
		Store          string               `json:"store"`
		Month          time.Month           `json:"month"`
		WeeksUsed      int                  `json:"weeks_used"`
		DeliveryCovers int64                `json:"delivery_covers"`
		Forecast       []schema.ForecastRow `json:"forecast"`
		Demand         schema.MatrixView    `json:"demand"`
		Total          float64              `json:"total"`
	}
	output := make([]jsonDemand, len(results))
	for i, r := range results {
		output[i] = jsonDemand{
			Scenario:       r.Scenario,
			Store:          r.Store,
			Month:          r.Month,
			WeeksUsed:      r.WeeksUsed,
			DeliveryCovers: r.DeliveryCovers,
			Forecast:       r.Forecast,
			Demand:         r.Demand.View(schema.DemandMatrix, r.Scenario),
			Total:          r.Demand.Total(),
		}
	}
	return writeJSON(w, output)
}

// writeDemandTables prints the daypart forecast and the hourly demand of every scenario.
func writeDemandTables(w io.Writer, results []schema.DemandResult, cfg *contract.Config, duration time.Duration) error {
	perChunk := getHoursPerChunk(cfg)
	whole := createFormatter(0)

	for _, r := range results {
		if err := writeForecastTable(w, r, whole); err != nil {
			return err
		}
		title := fmt.Sprintf("Hourly demand [%s] for %s", r.Scenario, describeStore(r.Store, r.Month))
		if err := writeMatrixTable(w, valueTable(title, r.Demand, whole, true), perChunk); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total covers: %s from %d weeks of history", whole(r.Demand.Total()), r.WeeksUsed); err != nil {
			return err
		}
		if r.DeliveryCovers > 0 {
			if _, err := fmt.Fprintf(w, " (includes %d delivery covers)", r.DeliveryCovers); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Demand computed for %d scenarios in %v\n", len(results), duration)
	return err
}

// writeForecastTable prints the daypart totals that were reallocated.
func writeForecastTable(w io.Writer, r schema.DemandResult, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Daypart forecast [%s]\n", r.Scenario); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Breakfast", "Afternoon", "Evening", "Dinner", "Total"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range r.Forecast {
		data = append(data, []string{
			row.Day,
			fmtFloat(row.Breakfast),
			fmtFloat(row.Afternoon),
			fmtFloat(row.Evening),
			fmtFloat(row.Dinner),
			fmtFloat(row.Breakfast + row.Afternoon + row.Evening + row.Dinner),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
