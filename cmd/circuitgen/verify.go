package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuitgen/internal/levels"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>...",
	Short: "Check level files against every invariant",
	Long: `Parse each level file and check its path, tiles, counts, scramble and
connectivity against the difficulty profile in effect.

Examples:
  circuitgen verify levels/easy-4x4-2a.yaml
  circuitgen verify levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	loader := levels.NewLoader("")
	loader.Profiles = app.cfg.ProfileFor

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		lvl, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s (%s, min moves %d)\n", path, lvl.ID, lvl.Puzzle.MinMoves)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files failed verification", failed, len(args))
	}
	return nil
}
