// tetris is a terminal Tetris with CPU opponents and a neuroevolution
// trainer for the learned CPU.
//
// Usage:
//
//	tetris                     - Start the menu
//	tetris play                - Play a solo marathon (or watch autoplay)
//	tetris versus              - Local match on one keyboard, with CPUs
//	tetris train               - Evolve the learned CPU genome
//	tetris scores              - Show leaderboards
//	tetris serve               - Start SSH server for remote play
//	tetris list                - List game modes
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: from config, 60)
//	--seed <value>     - Set RNG seed for reproducible piece sequences
//	--db <path>        - Set database path (default: from config)
//	--config <path>    - Use a custom YAML config
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"

	// Register the solo modes
	_ "github.com/vovakirdan/tui-tetris/internal/games/solo"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagName     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal, with CPU opponents",
	Long: `Tetris is a terminal falling-block game with solo play, local
versus matches against friends or CPU players, and a trainer that
evolves the neural network behind the hardest CPU.

Without a subcommand the interactive menu starts.

Examples:
  tetris
  tetris play --speed 4
  tetris play --autoplay --difficulty hard
  tetris versus --players 2 --cpus 1
  tetris train --generations 20 --history history.parquet
  tetris serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Player name (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the CLI logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	if flagName != "" {
		cfg.Game.PlayerName = flagName
	}
	return cfg
}

// openStore opens the score database. Play continues without one.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Game.TickRate,
		Seed:     flagSeed,
	}
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(cfg, store, runtimeConfig(cfg), cfg.Game.PlayerName); err != nil {
		fail("%v", err)
	}
}
