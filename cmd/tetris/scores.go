package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboards",
	Long: `Display the best score of each name on the solo leaderboard and
on the versus rankings (matches with CPUs and human-only matches).

Examples:
  tetris scores
  tetris scores --limit 20
  tetris scores --interactive
  tetris scores import leaderboard.csv`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var importCmd = &cobra.Command{
	Use:   "import <csv>...",
	Short: "Import old leaderboard CSV files",
	Long: `Import solo (timestamp,name,score,speed,level,lines) or match
(timestamp,name,score,is_cpu) leaderboard CSV files. Unparseable numbers
become 0 and rows too short to carry a name and score are skipped.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runImport,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Names per leaderboard")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboards in the TUI")
	scoresCmd.AddCommand(importCmd)
}

func mustOpenStore() *storage.Store {
	cfg := loadConfig()
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	return store
}

func runScores(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagInteractive {
		rt := runtimeConfig(loadConfig())
		if err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	solo, err := store.TopSolo(flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}
	printRanking("Solo", solo)

	if stats, err := store.GetSoloStats(); err == nil && stats.GamesCount > 0 {
		fmt.Printf("  %d games, average %.0f, %d lines, last played %s\n\n",
			stats.GamesCount, stats.AvgScore, stats.TotalLines, stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	for _, board := range []struct {
		title string
		cpu   bool
	}{
		{"Versus vs CPU", true},
		{"Local versus", false},
	} {
		ranked, err := store.MatchRankings(board.cpu, flagLimit)
		if err != nil {
			store.Close()
			fail("retrieving rankings: %v", err)
		}
		printRanking(board.title, ranked)
	}
}

func printRanking(title string, ranked []storage.RankedScore) {
	fmt.Printf("%s\n\n", title)
	if len(ranked) == 0 {
		fmt.Println("  No scores recorded yet.")
		fmt.Println()
		return
	}

	fmt.Printf("  %-4s  %-18s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-18s  %s\n", "----", "----", "-----")
	for _, r := range ranked {
		name := r.Name
		if r.IsCPU {
			name += " (CPU)"
		}
		fmt.Printf("  %-4d  %-18s  %d\n", r.Rank, name, r.Score)
	}
	fmt.Println()
}

func runImport(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	failed := false
	for _, path := range args {
		imported, skipped, err := store.ImportLegacyCSV(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: imported %d rows, skipped %d\n", path, imported, skipped)
	}
	if failed {
		store.Close()
		os.Exit(1)
	}
}
