package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels"
	"github.com/vovakirdan/circuitgen/internal/preview"
	"github.com/vovakirdan/circuitgen/internal/storage"
)

var (
	flagDifficulty string
	flagSize       int
	flagCount      int
	flagAttempts   int
	flagOutDir     string
	flagSave       bool
	flagName       string
	flagSolution   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate levels and preview them",
	Long: `Generate one or more levels for a difficulty tier and print each board
as it starts (scrambled). With --count N the seeds are seed, seed+1, ...;
a zero seed picks a time-based base seed, which is printed so the run can
be reproduced.

Examples:
  circuitgen generate
  circuitgen generate -d hell --size 8
  circuitgen generate -d normal --count 10 --out levels/
  circuitgen generate --seed 42 --save --name "Daily"`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "Tier: easy, normal, hard, hell (default from config)")
	generateCmd.Flags().IntVar(&flagSize, "size", 0, "Grid size (0 = sample from the tier)")
	generateCmd.Flags().IntVar(&flagCount, "count", 1, "Number of levels to generate")
	generateCmd.Flags().IntVar(&flagAttempts, "attempts", 0, "Attempts per level (default from config)")
	generateCmd.Flags().StringVar(&flagOutDir, "out", "", "Write each level as YAML into this directory")
	generateCmd.Flags().BoolVar(&flagSave, "save", false, "Store each level in the archive")
	generateCmd.Flags().StringVar(&flagName, "name", "", "Display name for saved levels")
	generateCmd.Flags().BoolVar(&flagSolution, "solution", false, "Also print the solved board")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := app.cfg

	tier := cfg.Tier()
	if flagDifficulty != "" {
		t, err := circuit.ParseTier(flagDifficulty)
		if err != nil {
			return err
		}
		tier = t
	}
	if flagCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	profile := cfg.ProfileFor(tier)
	params := circuit.GenParams{
		Difficulty:     tier,
		Profile:        &profile,
		GridSize:       cfg.Generation.GridSize,
		MaxAttempts:    cfg.Generation.MaxAttempts,
		MaxSearchSteps: cfg.Generation.MaxSearchSteps,
		Logger:         app.logger,
	}
	if flagSize != 0 {
		params.GridSize = flagSize
	}
	if flagAttempts != 0 {
		params.MaxAttempts = flagAttempts
	}

	base := flagSeed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
		app.logger.Info("using time-based seed", "seed", fmt.Sprintf("%#x", base))
	}
	// seed+i must not wrap to 0, which would switch to a clock seed.
	if base > math.MaxUint64-uint64(flagCount-1) {
		return fmt.Errorf("--seed %d with --count %d overflows the seed range", base, flagCount)
	}

	var archive *storage.Store
	if flagSave {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		archive = store
	}

	out := cmd.OutOrStdout()
	color := useColor(out)
	for i := 0; i < flagCount; i++ {
		params.Seed = base + uint64(i)
		level, err := circuit.GenerateLevel(params)
		if err != nil {
			return err
		}
		id := levels.ID(level)

		fmt.Fprintf(out, "%s (attempts %d)\n", id, level.Attempts)
		fmt.Fprint(out, preview.Render(level, preview.Options{Color: color, Scrambled: true}))
		if flagSolution {
			fmt.Fprintln(out, "solution:")
			fmt.Fprint(out, preview.Render(level, preview.Options{Color: color}))
		}

		if flagOutDir != "" {
			path, err := levels.Save(flagOutDir, level, flagName)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %s\n", path)
		}
		if archive != nil {
			if _, err := archive.SaveLevel(level, flagName); err != nil {
				return err
			}
			fmt.Fprintf(out, "archived %s\n", id)
		}
		fmt.Fprintln(out)
	}
	return nil
}
