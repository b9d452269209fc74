package cmd

import (
	"github.com/huangsam/shiftfit/core"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/spf13/cobra"
)

// coverageCmd counts active shifts per hour.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Count the staff on shift in every hour of the week.",
	Long: `Read a shift rota and count the shifts active in each hour of each day.

A shift covers every hour from its start hour up to, but not including, its
end hour. Shifts ending at or before their start run past midnight.

Examples:
  # Coverage of the whole rota
  shiftfit coverage --shifts rota.csv

  # Only front of house
  shiftfit coverage --shifts rota.csv --roles Server,Host`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCoverage(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute coverage", err)
		}
	},
}
