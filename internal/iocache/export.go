package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/parquet"
)

// ExecuteHistoryExport writes the run history of store to two Parquet files
// derived from outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scenarios, err := store.GetAllScenarios()
	if err != nil {
		return fmt.Errorf("failed to retrieve scenario results: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	scenariosFile := outputFile + ".scenario_results.parquet"
	if err := parquet.WriteScenarioResultsParquet(parquet.ConvertScenarioRecords(scenarios), scenariosFile); err != nil {
		return fmt.Errorf("failed to write scenario results: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scenario results to: %s\n", len(scenarios), scenariosFile)

	return nil
}
