package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/versus"
)

var (
	flagPlayers     int
	flagCPUs        int
	flagCPUTier     string
	flagPlayerNames []string
)

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Play a local match against friends or CPUs",
	Long: `Start a match of 2 or 3 boards sharing one keyboard. Humans take
the first boards, CPUs fill the rest. Every board gets the same pieces.
The match ends when every board has topped out; the highest score wins
and a tie is a draw.

Controls:
  Player 1  - A/D move, W rotate, S soft drop
  Player 2  - J/L move, I rotate, K soft drop
  Player 3  - Arrow keys
  P         - Pause
  R         - Restart (after the match)
  Q/Ctrl+C  - Quit

Examples:
  tetris versus                          # 2 humans
  tetris versus --cpus 1                 # you against one CPU
  tetris versus --players 3 --cpus 2 --difficulty hard
  tetris versus --names alice,bob`,
	Args: cobra.NoArgs,
	Run:  runVersus,
}

func init() {
	versusCmd.Flags().IntVar(&flagPlayers, "players", 2, "Boards in the match (2-3)")
	versusCmd.Flags().IntVar(&flagCPUs, "cpus", 0, "CPU boards (0-2, at least one human stays)")
	versusCmd.Flags().StringVar(&flagCPUTier, "difficulty", "", "CPU tier: easy, medium, hard (default from config)")
	versusCmd.Flags().StringSliceVar(&flagPlayerNames, "names", nil, "Human player names in seat order")
}

func runVersus(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagPlayers > cfg.Versus.MaxBoards {
		fail("at most %d boards are allowed", cfg.Versus.MaxBoards)
	}
	difficulty := cfg.Versus.CPUDifficulty
	if flagCPUTier != "" {
		difficulty = flagCPUTier
	}

	lineup := versus.Lineup{Players: flagPlayers, CPUs: flagCPUs, Names: flagPlayerNames}
	if len(lineup.Names) == 0 && cfg.Game.PlayerName != "" {
		lineup.Names = []string{cfg.Game.PlayerName}
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig(cfg)
	match := tui.NewMatch(cfg, store, lineup, difficulty, rt.Seed)
	if err := match.PolicyErr(); err != nil {
		newLogger("tetris").Warn("CPU fell back to a weaker policy", "error", err)
	}

	if err := tui.RunVersus(match, rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
	}
	if err := match.AgentErr(); err != nil {
		newLogger("tetris").Warn("CPU policy failed during the match", "error", err)
	}
}
