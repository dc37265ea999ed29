// circuitgen generates solvable tile-rotation circuit puzzles.
//
// Usage:
//
//	circuitgen generate          - Generate levels and preview them
//	circuitgen profiles          - Show the difficulty profiles in effect
//	circuitgen levels            - Browse the level archive
//	circuitgen show <id>         - Draw an archived or saved level
//	circuitgen verify <file>...  - Check level files against every invariant
//
// Global flags:
//
//	--seed <value>       - RNG seed for reproducible levels (0 = time based)
//	--config <path>      - Configuration file
//	--db <path>          - SQLite archive path (overrides the config)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/circuitgen/internal/config"
	"github.com/vovakirdan/circuitgen/internal/logging"
	"github.com/vovakirdan/circuitgen/internal/storage"
)

var (
	// Global flags
	flagSeed       uint64
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string
	flagNoColor    bool
)

// app holds what PersistentPreRunE prepares for every subcommand.
var app struct {
	cfg    config.Config
	logger *log.Logger
	closer io.Closer
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "circuitgen",
	Short: "circuitgen - generate solvable circuit rotation puzzles",
	Long: `circuitgen builds N×N circuit puzzles: a power source, a terminal and
rotatable straight and corner conduits forming a single path. Every level is
scrambled so the player has work to do, and checked against its difficulty tier.

Available commands:
  generate  - Generate levels and preview them
  profiles  - Show the difficulty profiles in effect
  levels    - Browse the level archive
  show      - Draw an archived or saved level
  verify    - Check level files

Examples:
  circuitgen generate -d hard
  circuitgen generate -d easy --count 5 --seed 42 --save
  circuitgen show easy-4x4-2a
  circuitgen verify levels/*.yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if app.closer != nil {
			app.closer.Close()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite level archive (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable coloured previews")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(verifyCmd)
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.Driver = string(storage.DialectSQLite)
		cfg.Storage.Path = flagDBPath
	}

	logger, closer, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.logger = logger
	app.closer = closer
	return nil
}

// openStore opens the level archive described by the configuration.
func openStore() (*storage.Store, error) {
	sc := app.cfg.Storage
	return storage.Open(storage.Config{
		Driver:     sc.Driver,
		SQLitePath: sc.Path,
		Postgres: storage.PostgresConfig{
			Host:     sc.Postgres.Host,
			Port:     sc.Postgres.Port,
			User:     sc.Postgres.User,
			Password: sc.Postgres.Password,
			Database: sc.Postgres.Database,
			SSLMode:  sc.Postgres.SSLMode,
		},
	})
}

// useColor reports whether previews written to w should be styled.
func useColor(w io.Writer) bool {
	if flagNoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
