package cmd

import (
	"fmt"
	"io"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the resolved configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML.",
	Long: `Merge defaults, the config file, SHIFTFIT_* environment variables and flags,
validate the result and print it as YAML.

The output is a valid .shiftfit.yaml. Connection strings are never printed.

Examples:
  # Check what a run would use
  shiftfit config --store Soho --month 9

  # Start a config file from the current flags
  shiftfit config --transactions aloha.csv --store Soho > .shiftfit.yaml`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return resolveConfig()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		if err := writeConfigYAML(cmd.OutOrStdout(), cfg); err != nil {
			contract.LogFatal("Cannot print config", err)
		}
	},
}

// writeConfigYAML renders the validated configuration.
func writeConfigYAML(w io.Writer, c *contract.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
