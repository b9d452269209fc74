package cmd

import (
	"github.com/huangsam/shiftfit/core"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/spf13/cobra"
)

// efficiencyCmd compares demand with staffing.
var efficiencyCmd = &cobra.Command{
	Use:   "efficiency",
	Short: "Compare hourly demand with staffing as covers per staff member.",
	Long: `Compute hourly demand and staffing for every scenario, align their hours and
divide one by the other.

Each hour is labeled against the balanced band:
- Understaffed: more covers per staff member than the high threshold
- Balanced: within the band
- Overstaffed: fewer covers per staff member than the low threshold
- Unstaffed: demand with nobody on shift
- Idle: no demand

Scenarios from the config file run concurrently. When a history backend is
configured, every run and its scenario summaries are recorded.

Examples:
  # One scenario from flags
  shiftfit efficiency --transactions aloha.csv --forecast high.csv --shifts rota_high.csv

  # Every scenario from .shiftfit.yaml, with a tighter band
  shiftfit efficiency --thresholds-override "low:3,high:5"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEfficiency(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compute efficiency", err)
		}
	},
}
