package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/versus"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreTopSoloBestPerName(t *testing.T) {
	store := openTestStore(t)

	games := []SoloScore{
		{Name: "ana", Score: 100, Speed: 3, Level: 1, Lines: 1},
		{Name: "bob", Score: 450, Speed: 4, Level: 1, Lines: 3},
		{Name: "ana", Score: 900, Speed: 5, Level: 2, Lines: 12},
		{Name: "  ", Score: 50},
	}
	for _, g := range games {
		if _, err := store.SaveSolo(g); err != nil {
			t.Fatalf("SaveSolo() failed: %v", err)
		}
	}

	top, err := store.TopSolo(10)
	if err != nil {
		t.Fatalf("TopSolo() failed: %v", err)
	}

	expected := []RankedScore{
		{Rank: 1, Name: "ana", Score: 900},
		{Rank: 2, Name: "bob", Score: 450},
		{Rank: 3, Name: "Player", Score: 50},
	}
	if len(top) != len(expected) {
		t.Fatalf("TopSolo() returned %d rows, expected %d", len(top), len(expected))
	}
	for i := range expected {
		if top[i] != expected[i] {
			t.Errorf("TopSolo()[%d] = %+v, expected %+v", i, top[i], expected[i])
		}
	}
}

func TestStoreTopSoloLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveSolo(SoloScore{Name: string(rune('a' + i)), Score: i * 10}); err != nil {
			t.Fatalf("SaveSolo() failed: %v", err)
		}
	}

	top, err := store.TopSolo(5)
	if err != nil {
		t.Fatalf("TopSolo() failed: %v", err)
	}
	if len(top) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(top))
	}
	if top[0].Score != 140 {
		t.Errorf("Expected top score 140, got %d", top[0].Score)
	}
}

func TestStoreRecentSoloKeepsDetails(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSolo(SoloScore{Name: "ana", Score: 300, Speed: 4, Level: 2, Lines: 11}); err != nil {
		t.Fatalf("SaveSolo() failed: %v", err)
	}

	recent, err := store.RecentSolo(10)
	if err != nil {
		t.Fatalf("RecentSolo() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 game, got %d", len(recent))
	}
	got := recent[0]
	if got.Speed != 4 || got.Level != 2 || got.Lines != 11 {
		t.Errorf("RecentSolo()[0] = %+v, expected speed 4, level 2, lines 11", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	for _, score := range []int{100, 500, 200} {
		store.SaveSolo(SoloScore{Name: "x", Score: score})
	}

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("Expected high score 500, got %d", high)
	}

	if err := store.ClearSolo(); err != nil {
		t.Fatalf("ClearSolo() failed: %v", err)
	}
	high, _ = store.HighScore()
	if high != 0 {
		t.Errorf("Expected 0 after clear, got %d", high)
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	cpuMatch := versus.MatchResult{
		MatchID: "m1",
		Boards: []versus.BoardResult{
			{Name: "ana", Score: 1200, Winner: true},
			{Name: "CPU 1", Score: 900, IsCPU: true},
		},
	}
	humanMatch := versus.MatchResult{
		MatchID: "m2",
		Boards: []versus.BoardResult{
			{Name: "ana", Score: 300},
			{Name: "bob", Score: 700, Winner: true},
		},
	}
	for _, m := range []versus.MatchResult{cpuMatch, humanMatch} {
		if err := store.SaveMatchResult(m); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	cpuRanks, err := store.MatchRankings(true, 10)
	if err != nil {
		t.Fatalf("MatchRankings() failed: %v", err)
	}
	if len(cpuRanks) != 2 {
		t.Fatalf("Expected 2 rows on the CPU leaderboard, got %d", len(cpuRanks))
	}
	if cpuRanks[0].Name != "ana" || cpuRanks[0].IsCPU {
		t.Errorf("cpuRanks[0] = %+v, expected human ana", cpuRanks[0])
	}
	if !cpuRanks[1].IsCPU {
		t.Errorf("cpuRanks[1] = %+v, expected a CPU row", cpuRanks[1])
	}

	humanRanks, err := store.MatchRankings(false, 10)
	if err != nil {
		t.Fatalf("MatchRankings() failed: %v", err)
	}
	if len(humanRanks) != 2 || humanRanks[0].Name != "bob" || humanRanks[0].Score != 700 {
		t.Errorf("humanRanks = %+v, expected bob first with 700", humanRanks)
	}

	recent, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("Expected 4 match rows, got %d", len(recent))
	}
	winners := 0
	for _, e := range recent {
		if e.Winner {
			winners++
		}
		if e.MatchID == "m1" && !e.CPUMatch {
			t.Errorf("Row %+v should be flagged as a CPU match", e)
		}
	}
	if winners != 2 {
		t.Errorf("Expected 2 winner rows, got %d", winners)
	}
}

func TestStoreSoloStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetSoloStats()
	if err != nil {
		t.Fatalf("GetSoloStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("GetSoloStats() on empty store = %+v", stats)
	}

	store.SaveSolo(SoloScore{Name: "a", Score: 100, Lines: 2})
	store.SaveSolo(SoloScore{Name: "b", Score: 300, Lines: 5})

	stats, err = store.GetSoloStats()
	if err != nil {
		t.Fatalf("GetSoloStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalLines != 7 {
		t.Errorf("GetSoloStats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
