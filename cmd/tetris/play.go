package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/solo"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagSpeed      int
	flagAutoplay   bool
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a solo game",
	Long: `Start a solo marathon, or watch a CPU play with --autoplay.

Controls:
  Left/Right, A/D  - Move
  Up, W            - Rotate
  Down, S          - Soft drop (hold)
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Finished marathon games are saved to the solo leaderboard. Autoplay
games are not.

Examples:
  tetris play
  tetris play --speed 5 --name alice
  tetris play --autoplay --difficulty hard
  tetris play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSpeed, "speed", 0, "Speed tier 1-5 (0 = from config)")
	playCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Let a CPU agent drive the board")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Autoplay tier: easy, medium, hard (default from config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSpeed != 0 {
		cfg.Game.Speed = flagSpeed
	}
	if flagDifficulty != "" {
		cfg.Game.AutoplayDifficulty = flagDifficulty
	}
	cfg.Normalize()

	id := string(solo.ModeMarathon)
	if flagAutoplay {
		id = string(solo.ModeAutoplay)
	}
	game, err := registry.Create(id, cfg)
	if err != nil {
		fail("%v", err)
	}

	if g, ok := game.(*solo.Game); ok && flagAutoplay {
		rt := runtimeConfig(cfg)
		g.Reset(rt)
		if err := g.PolicyErr(); err != nil {
			newLogger("tetris").Warn("autoplay fell back to a weaker policy", "error", err)
		}
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(cfg), cfg.Game.PlayerName); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
