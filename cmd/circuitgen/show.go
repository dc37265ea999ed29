package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels"
	"github.com/vovakirdan/circuitgen/internal/preview"
	"github.com/vovakirdan/circuitgen/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Draw an archived or saved level",
	Long: `Draw a level by id. The archive is searched first, then the YAML files in
the configured levels directory.

Examples:
  circuitgen show easy-4x4-2a
  circuitgen show hard-6x6-1f --solution`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagSolution, "solution", false, "Draw the solved board as well")
}

func runShow(cmd *cobra.Command, args []string) error {
	level, err := findLevel(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := useColor(out)
	fmt.Fprint(out, preview.Render(level, preview.Options{Color: color, Scrambled: true}))
	if flagSolution {
		fmt.Fprintln(out, "solution:")
		fmt.Fprint(out, preview.Render(level, preview.Options{Color: color}))
	}
	return nil
}

// findLevel looks the id up in the archive, then in the levels directory.
func findLevel(id string) (*circuit.Level, error) {
	store, err := openStore()
	if err != nil {
		app.logger.Warn("archive unavailable, checking level files only", "err", err)
	} else {
		defer store.Close()
		rec, err := store.LevelByID(id)
		if err == nil {
			return rec.Puzzle, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	loader := levels.NewLoader(app.cfg.Levels.Dir)
	loader.Profiles = app.cfg.ProfileFor
	lvl, err := loader.LoadByID(id)
	if err != nil {
		return nil, err
	}
	return lvl.Puzzle, nil
}
