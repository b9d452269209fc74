package cmd

import (
	"github.com/huangsam/shiftfit/core"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/spf13/cobra"
)

// demandCmd spreads daypart forecasts over hours.
var demandCmd = &cobra.Command{
	Use:   "demand",
	Short: "Spread a daypart forecast over the hours of the typical week.",
	Long: `Reallocate each day's breakfast, afternoon, evening and dinner forecast
across the hours of that daypart, following the shape learned from history.

With --with-delivery, projected delivery revenue for the scenario tier is
converted into covers and shared across days and dayparts first.

When the config file lists scenarios, every scenario is computed.

Examples:
  # Hourly demand for one forecast
  shiftfit demand --transactions aloha.csv --store Soho --month 9 --forecast high.csv

  # Blend the high delivery tier
  shiftfit demand --transactions aloha.csv --forecast high.csv \
    --with-delivery --delivery delivery.csv --tier high`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDemand(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute demand", err)
		}
	},
}
