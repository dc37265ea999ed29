package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/config"
)

var flagDefaults bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the difficulty profiles in effect",
	Long: `Show each tier's movable-tile range, corner range, scramble ratio and grid
size range, with overrides from the configuration applied.

Use --defaults to print the built-in configuration file as a starting point
for ~/.circuitgen/configs/circuitgen.yaml.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the default configuration file")
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	fmt.Fprintf(out, "  %-7s  %-8s  %-8s  %-5s  %-5s\n", "Tier", "Movable", "Corners", "Ratio", "Grid")
	fmt.Fprintf(out, "  %-7s  %-8s  %-8s  %-5s  %-5s\n", "----", "-------", "-------", "-----", "----")
	for _, t := range circuit.AllTiers() {
		p := app.cfg.ProfileFor(t)
		mark := ""
		if app.cfg.HasOverride(t) {
			mark = " *"
		}
		fmt.Fprintf(out, "  %-7s  %-8s  %-8s  %-5.2f  %-5s%s\n",
			t, p.Movable, p.Corners, p.ScrambleRatio, p.GridSize, mark)
	}
	return nil
}
