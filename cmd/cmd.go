// Package cmd defines the command-line interface for shiftfit.
package cmd

import (
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(demandCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(efficiencyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	pf := rootCmd.PersistentFlags()
	pf.String("transactions", "", "Path to the point-of-sale transactions CSV")
	pf.String("forecast", "", "Path to the daypart forecast CSV")
	pf.String("shifts", "", "Path to the shift rota CSV")
	pf.String("delivery", "", "Path to the delivery sales CSV")
	pf.String("store", "", "Store to learn the typical week from (empty keeps every store)")
	pf.String("month", "", "Month to learn from, by name or number (empty keeps every month)")
	pf.String("tier", "", "Delivery tier of the single scenario: high or med or low")
	pf.Bool("with-delivery", false, "Blend projected delivery covers into the forecast")
	pf.String("spend-per-head", contract.DefaultSpendPerHead, "Delivery revenue per cover")
	pf.StringSlice("roles", nil, "Comma-separated roles to count in coverage (default all)")
	pf.Float64("guest-cap", contract.DefaultGuestCap, "Guest counts at or above this are replaced from sales")
	pf.Float64("spend-per-cover", contract.DefaultSpendPerCover, "Spend per cover used to replace implausible guest counts")
	pf.Bool("absent-weeks-as-zero", false, "Average every hour over all weeks, counting empty hours as zero")
	pf.String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	pf.String("output-file", "", "Optional path to write output to")
	pf.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	pf.Int("width", 0, "Terminal width override (0 = auto-detect)")
	pf.String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	pf.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	pf.String("profile", "", "Enable profiling and write profiles to files with this prefix")
	pf.String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	pf.String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	pf.String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	pf.String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	pf.String("config", "", "Path to config file")
	if err := viper.BindPFlags(pf); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of profileCmd to Viper
	profileCmd.Flags().Bool("shapes", false, "Also print the hourly shape of each daypart")
	if err := viper.BindPFlags(profileCmd.Flags()); err != nil {
		contract.LogFatal("Error binding profile flags", err)
	}

	// Bind all flags of efficiencyCmd to Viper
	efficiencyCmd.Flags().String("thresholds-override", "", "Balanced band of covers per staff (format: 'low:2,high:6')")
	if err := viper.BindPFlags(efficiencyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding efficiency flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
