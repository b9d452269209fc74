package cmd

import (
	"github.com/huangsam/shiftfit/core"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/spf13/cobra"
)

// profileCmd learns the typical week of a store.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the typical week of covers learned from transactions.",
	Long: `Clean the point-of-sale history and average every week it covers into a
typical week of covers per day and hour.

Voided, empty and malformed checks are dropped. Implausibly large guest counts
are replaced by sales divided by the spend per cover. Checks opened before
07:00 belong to the previous service day.

Examples:
  # Typical September week for one store
  shiftfit profile --transactions aloha.csv --store Soho --month September

  # Include the hourly shape of each daypart
  shiftfit profile --transactions aloha.csv --store Soho --month 9 --shapes

  # Export the matrix for a notebook
  shiftfit profile --transactions aloha.csv --output parquet --output-file week.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProfile(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot build profile", err)
		}
	},
}
