package tetris

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestBoardIsOccupied(t *testing.T) {
	b := NewBoardFromGrid(GridFromRows("#........."))

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"left of grid", -1, 5, true},
		{"right of grid", Width, 5, true},
		{"below grid", 3, Height, true},
		{"above grid is free", 3, -1, false},
		{"far above grid is free", 0, -5, false},
		{"empty cell", 5, 5, false},
		{"occupied cell", 0, Height - 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.IsOccupied(tc.x, tc.y); got != tc.expected {
				t.Errorf("IsOccupied(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestBoardLockIgnoresOutOfRange(t *testing.T) {
	b := &Board{}
	b.Lock([]core.Point{core.Pt(2, -1), core.Pt(-1, 4), core.Pt(10, 4), core.Pt(3, 20), core.Pt(4, 7)})

	g := b.Grid()
	if g.Count() != 1 {
		t.Fatalf("Lock() wrote %d cells, expected 1", g.Count())
	}
	if !g[7][4] {
		t.Error("Lock() should mark (4, 7)")
	}
}

func TestBoardSpawnBlocked(t *testing.T) {
	var g Grid
	g[1][4] = true
	g[5][4] = true
	b := NewBoardFromGrid(g)

	tests := []struct {
		name     string
		cells    []core.Point
		expected bool
	}{
		{"free top rows", []core.Point{core.Pt(3, 0), core.Pt(3, 1)}, false},
		{"occupied row 1", []core.Point{core.Pt(4, 1), core.Pt(4, 0)}, true},
		{"occupied below spawn rows", []core.Point{core.Pt(4, 5)}, false},
		{"above grid", []core.Point{core.Pt(4, -1)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.SpawnBlocked(tc.cells); got != tc.expected {
				t.Errorf("SpawnBlocked(%v) = %v, expected %v", tc.cells, got, tc.expected)
			}
		})
	}
}

func TestClearFullLinesFixture(t *testing.T) {
	b := NewBoardFromGrid(GridFromRows(
		"#.........",
		"##########",
		".#........",
		"##########",
		"##########",
		"..#.......",
	))

	cleared := b.ClearFullLines()
	if cleared != 3 {
		t.Fatalf("ClearFullLines() = %d, expected 3", cleared)
	}

	expected := GridFromRows(
		"#.........",
		".#........",
		"..#.......",
	)
	if b.Grid() != expected {
		t.Errorf("ClearFullLines() produced:\n%s\nexpected:\n%s", b.Grid(), expected)
	}
}

// removeFullRows is the slow reference: delete each full row and let
// everything above it fall by one.
func removeFullRows(g Grid) (Grid, int) {
	kept := make([][Width]bool, 0, Height)
	for y := 0; y < Height; y++ {
		if !rowFull(g[y]) {
			kept = append(kept, g[y])
		}
	}
	var out Grid
	offset := Height - len(kept)
	for i, row := range kept {
		out[offset+i] = row
	}
	return out, Height - len(kept)
}

func TestClearFullLinesMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := 0; trial < 200; trial++ {
		var g Grid
		for y := 0; y < Height; y++ {
			if rng.IntN(3) == 0 {
				for x := 0; x < Width; x++ {
					g[y][x] = true
				}
				continue
			}
			for x := 0; x < Width; x++ {
				g[y][x] = rng.IntN(2) == 0
			}
		}

		want, wantCount := removeFullRows(g)
		b := NewBoardFromGrid(g)
		gotCount := b.ClearFullLines()

		if gotCount != wantCount {
			t.Fatalf("trial %d: ClearFullLines() = %d, expected %d", trial, gotCount, wantCount)
		}
		if b.Grid() != want {
			t.Fatalf("trial %d: grid mismatch\n%s\nexpected:\n%s", trial, b.Grid(), want)
		}
	}
}

func TestGridFromRowsAlignsToBottom(t *testing.T) {
	g := GridFromRows("#........#")
	if !g[Height-1][0] || !g[Height-1][9] {
		t.Error("GridFromRows should fill the bottom row")
	}
	if g.Count() != 2 {
		t.Errorf("Count() = %d, expected 2", g.Count())
	}
}
