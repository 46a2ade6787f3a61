package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/ai"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"ana", "ana"},
		{"  bob  ", "bob"},
		{"", "Player"},
		{"   ", "Player"},
		{"a,b", "a b"},
		{"line\nbreak\r", "line break"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqr"},
		{"ñññññññññññññññññññññ", "ññññññññññññññññññ"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SafeName(tt.in); got != tt.expected {
				t.Errorf("SafeName(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestGenomeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best_genome.json")
	genes := []float64{0.5, -1.25, 3e-7, 0}

	if err := SaveGenome(path, genes); err != nil {
		t.Fatalf("SaveGenome() failed: %v", err)
	}
	got, err := LoadGenome(path)
	if err != nil {
		t.Fatalf("LoadGenome() failed: %v", err)
	}
	if !reflect.DeepEqual(got, genes) {
		t.Errorf("LoadGenome() = %v, expected %v", got, genes)
	}

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "[") {
		t.Errorf("Expected a JSON array, got %q", data)
	}
}

func TestLoadGenomeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGenome(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, ErrNoGenome) {
		t.Errorf("LoadGenome(missing) error = %v, expected ErrNoGenome", err)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	_, err = LoadGenome(bad)
	if err == nil || errors.Is(err, ErrNoGenome) {
		t.Errorf("LoadGenome(bad) error = %v, expected a decode error", err)
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte("[]"), 0o644)
	_, err = LoadGenome(empty)
	if !errors.Is(err, ErrNoGenome) {
		t.Errorf("LoadGenome(empty) error = %v, expected ErrNoGenome", err)
	}
}

func TestReadLegacySolo(t *testing.T) {
	data := `timestamp,name,score,speed,level,lines
2024-05-01 10:00:00,ana,1200,4,2,14
2024-05-01 10:05:00,bob,oops,3,1,0
short
2024-05-01 10:10:00,,80,3,1,1
`
	li, err := ReadLegacyCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadLegacyCSV() failed: %v", err)
	}
	if li.Kind != LegacySolo {
		t.Errorf("Kind = %v, expected LegacySolo", li.Kind)
	}
	if li.Skipped != 1 {
		t.Errorf("Skipped = %d, expected 1", li.Skipped)
	}
	if len(li.Solo) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(li.Solo))
	}
	if li.Solo[0].Score != 1200 || li.Solo[0].Lines != 14 || li.Solo[0].CreatedAt.IsZero() {
		t.Errorf("Row 0 = %+v", li.Solo[0])
	}
	if li.Solo[1].Score != 0 {
		t.Errorf("Unparseable score = %d, expected 0", li.Solo[1].Score)
	}
	if li.Solo[2].Name != "Player" {
		t.Errorf("Blank name = %q, expected Player", li.Solo[2].Name)
	}
}

func TestImportLegacyMatches(t *testing.T) {
	store := openTestStore(t)

	path := filepath.Join(t.TempDir(), "Leaderboard_CPU.csv")
	data := `timestamp,name,score,is_cpu
2024-05-01 10:00:00,Player 1,1200,False
2024-05-01 10:00:00,CPU 1,900,True
2024-05-02 11:00:00,Player 1,400,False
2024-05-02 11:00:00,CPU 1,400,True
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	imported, skipped, err := store.ImportLegacyCSV(path)
	if err != nil {
		t.Fatalf("ImportLegacyCSV() failed: %v", err)
	}
	if imported != 4 || skipped != 0 {
		t.Errorf("ImportLegacyCSV() = (%d, %d), expected (4, 0)", imported, skipped)
	}

	rows, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	matches := map[string]int{}
	winners := 0
	for _, r := range rows {
		matches[r.MatchID]++
		if r.Winner {
			winners++
		}
		if !r.CPUMatch {
			t.Errorf("Row %+v should be a CPU match", r)
		}
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
	// The tied second match has two winners.
	if winners != 3 {
		t.Errorf("Expected 3 winner rows, got %d", winners)
	}

	ranks, _ := store.MatchRankings(true, 10)
	if len(ranks) != 2 || ranks[0].Name != "Player 1" || ranks[0].Score != 1200 {
		t.Errorf("MatchRankings() = %+v", ranks)
	}
}

func TestImportLegacyMissingFile(t *testing.T) {
	store := openTestStore(t)
	if _, _, err := store.ImportLegacyCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestNetworkLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	topo := ai.Topology{Inputs: 2, Hidden: 1, Outputs: 1}

	load := NetworkLoader(path, topo)
	if _, err := load(); !errors.Is(err, ErrNoGenome) {
		t.Errorf("load() before save error = %v, expected ErrNoGenome", err)
	}

	if err := SaveGenome(path, []float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	n, err := load()
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	if n.Topology() != topo {
		t.Errorf("Topology() = %+v, expected %+v", n.Topology(), topo)
	}

	if err := SaveGenome(path, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := load(); !errors.Is(err, ai.ErrGenomeLength) {
		t.Errorf("load() of short genome error = %v, expected ErrGenomeLength", err)
	}
}
