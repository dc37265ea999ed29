package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuitgen/internal/circuit"
	"github.com/vovakirdan/circuitgen/internal/levels"
	"github.com/vovakirdan/circuitgen/internal/storage"
)

var (
	flagLimit    int
	flagTierOnly string
	flagDir      string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Browse the level archive",
	Long: `List, inspect and delete archived levels, or list the YAML level files
in the configured levels directory.

Examples:
  circuitgen levels
  circuitgen levels -d hard --limit 20
  circuitgen levels files --dir ./levels
  circuitgen levels stats
  circuitgen levels delete easy-4x4-2a`,
	Args: cobra.NoArgs,
	RunE: runLevelsList,
}

var levelsFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List verified YAML level files",
	Args:  cobra.NoArgs,
	RunE:  runLevelsFiles,
}

var levelsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics per tier",
	Args:  cobra.NoArgs,
	RunE:  runLevelsStats,
}

var levelsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived level",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsDelete,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of levels to list")
	levelsCmd.Flags().StringVarP(&flagTierOnly, "difficulty", "d", "", "Only list this tier")
	levelsFilesCmd.Flags().StringVar(&flagDir, "dir", "", "Levels directory (default from config)")

	levelsCmd.AddCommand(levelsFilesCmd)
	levelsCmd.AddCommand(levelsStatsCmd)
	levelsCmd.AddCommand(levelsDeleteCmd)
}

func runLevelsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var list []storage.LevelSummary
	if flagTierOnly != "" {
		tier, err := circuit.ParseTier(flagTierOnly)
		if err != nil {
			return err
		}
		list, err = store.LevelsByDifficulty(tier, flagLimit)
		if err != nil {
			return err
		}
	} else {
		if list, err = store.RecentLevels(flagLimit); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No levels archived yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'circuitgen generate --save' to archive one.")
		return nil
	}

	fmt.Fprintf(out, "  %-24s  %-16s  %-7s  %-4s  %-7s  %-7s  %s\n",
		"ID", "Name", "Tier", "Grid", "Movable", "Moves", "Date")
	fmt.Fprintf(out, "  %-24s  %-16s  %-7s  %-4s  %-7s  %-7s  %s\n",
		"--", "----", "----", "----", "-------", "-----", "----")
	for _, l := range list {
		fmt.Fprintf(out, "  %-24s  %-16s  %-7s  %-4d  %-7d  %-7d  %s\n",
			l.LevelID, l.Name, l.Difficulty, l.GridSize, l.Movable, l.MinMoves,
			l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runLevelsFiles(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = app.cfg.Levels.Dir
	}
	loader := levels.NewLoader(dir)
	loader.Profiles = app.cfg.ProfileFor

	list, err := loader.LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintf(out, "No valid level files in %s.\n", dir)
		return nil
	}
	for _, l := range list {
		fmt.Fprintf(out, "  %-24s  %-7s  %dx%d  %s\n",
			l.ID, l.Puzzle.Difficulty, l.Puzzle.GridSize, l.Puzzle.GridSize, l.FilePath)
	}
	return nil
}

func runLevelsStats(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.DifficultyStats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No levels archived yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-7s  %-5s  %-7s  %-7s  %s\n", "Tier", "Count", "Movable", "Corners", "Moves")
	fmt.Fprintf(out, "  %-7s  %-5s  %-7s  %-7s  %s\n", "----", "-----", "-------", "-------", "-----")
	for _, s := range stats {
		fmt.Fprintf(out, "  %-7s  %-5d  %-7.1f  %-7.1f  %.1f\n",
			s.Difficulty, s.Count, s.AvgMovable, s.AvgCorners, s.AvgMinMoves)
	}
	return nil
}

func runLevelsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteLevel(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
