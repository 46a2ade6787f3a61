package tetris

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Grid is a row-major occupancy matrix, Grid[y][x]. Row 0 is the top.
type Grid [Height][Width]bool

// GridFromRows builds a grid from text rows where '#' marks an occupied
// cell. Rows are aligned to the bottom of the grid so short fixtures
// describe the stack only.
func GridFromRows(rows ...string) Grid {
	var g Grid
	top := Height - len(rows)
	for i, row := range rows {
		y := top + i
		if y < 0 {
			continue
		}
		for x, r := range row {
			if x < Width && r == '#' {
				g[y][x] = true
			}
		}
	}
	return g
}

// With returns a copy of g with the in-range cells marked occupied.
func (g Grid) With(cells []core.Point) Grid {
	for _, c := range cells {
		if inside(c.X, c.Y) {
			g[c.Y][c.X] = true
		}
	}
	return g
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the grid with '#' and '.', one line per row.
func (g Grid) String() string {
	var sb strings.Builder
	for y := range g {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g[y] {
			if g[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Board holds the locked cells of one session.
// Only Lock and ClearFullLines write to it.
type Board struct {
	grid Grid
}

// NewBoardFromGrid returns a board whose locked cells match g.
func NewBoardFromGrid(g Grid) *Board {
	return &Board{grid: g}
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// IsOccupied is the collision test for a single position.
// Left, right and bottom out of range collide; anything above the grid is free.
func (b *Board) IsOccupied(x, y int) bool {
	if x < 0 || x >= Width || y >= Height {
		return true
	}
	if y < 0 {
		return false
	}
	return b.grid[y][x]
}

// Filled reports raw occupancy for in-range cells and false elsewhere.
func (b *Board) Filled(x, y int) bool {
	if !inside(x, y) {
		return false
	}
	return b.grid[y][x]
}

// Grid returns a copy of the occupancy matrix.
func (b *Board) Grid() Grid {
	return b.grid
}

// Lock marks each in-range cell occupied. Out-of-range cells are dropped.
func (b *Board) Lock(cells []core.Point) {
	for _, c := range cells {
		if inside(c.X, c.Y) {
			b.grid[c.Y][c.X] = true
		}
	}
}

// SpawnBlocked reports whether any of cells lies in the top two rows on a
// position that is already occupied. Call it before Lock.
func (b *Board) SpawnBlocked(cells []core.Point) bool {
	for _, c := range cells {
		if c.Y <= 1 && b.Filled(c.X, c.Y) {
			return true
		}
	}
	return false
}

// ClearFullLines removes every full row in one pass and returns the count.
// Remaining rows are compacted downward in order using a write cursor that
// starts at the bottom; vacated rows at the top are emptied.
func (b *Board) ClearFullLines() int {
	cleared := 0
	write := Height - 1
	for read := Height - 1; read >= 0; read-- {
		if rowFull(b.grid[read]) {
			cleared++
			continue
		}
		if write != read {
			b.grid[write] = b.grid[read]
		}
		write--
	}
	for y := write; y >= 0; y-- {
		b.grid[y] = [Width]bool{}
	}
	return cleared
}

func rowFull(row [Width]bool) bool {
	for _, filled := range row {
		if !filled {
			return false
		}
	}
	return true
}
