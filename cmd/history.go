package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/iocache"
	"github.com/huangsam/shiftfit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromConfig reads the history backend settings.
// An empty backend means history is disabled.
func historyBackendFromConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.NoneBackend
	if s := viper.GetString("history-backend"); s != "" {
		backend = schema.DatabaseBackend(strings.ToLower(s))
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup(open bool) error {
	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	if !open {
		return nil
	}
	// No profile caching for history commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyDBFilePath returns the SQLite file backing the run history.
func historyDBFilePath() string {
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded efficiency runs and exports",
	Long: `Manage the history of efficiency runs.

When a history backend is configured, every efficiency run is stored with:
- Run metadata (run ID, timestamp, configuration, duration)
- One summary per scenario (demand and staffing totals, peak and mean covers
  per staff member, hours per label)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show run history statistics
  export  - Export runs and scenario summaries to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Record runs in SQLite
  shiftfit efficiency --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  shiftfit history export --history-backend sqlite --output-file runs`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all stored runs and scenario summaries.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  shiftfit history export --output-file backup
  shiftfit history clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, historyDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyStatusCmd shows run history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run history statistics and connection details",
	Long: `Show detailed information about recorded runs.

Displays:
- Backend type and connection status
- Total number of runs and the latest run ID
- Last and oldest run timestamps
- Row counts per table`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("history store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet.

Writes two files next to --output-file:
- <output-file>.runs.parquet - one row per run
- <output-file>.scenario_results.parquet - one row per scenario per run

Requires: --output-file parameter

Examples:
  shiftfit history export --output-file shiftfit
  duckdb -c "SELECT * FROM read_parquet('shiftfit.scenario_results.parquet') LIMIT 10"`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historySetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  shiftfit history migrate --history-backend sqlite

  # Rollback to the initial state
  shiftfit history migrate --history-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations run on a fresh database, so the stores are not opened here.
		if err := historySetup(false); err != nil {
			return err
		}
		if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
			cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
