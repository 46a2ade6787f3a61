package ai

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Feature indexes one entry of a Features vector.
type Feature int

// The order is part of the genome format: network input i is feature i.
const (
	AggregateHeight Feature = iota
	MaxHeight
	Bumpiness
	Holes
	HolesUnderBlock
	CompleteLines
	Wells
	HeightVariance
	HeightMean
	ColumnTransitions
	RowTransitions
	EmptyColumns
	HighColumns
	PeakColumns
	HeightStdDev
	OccupiedCells

	FeatureCount int = iota
)

var featureNames = [FeatureCount]string{
	"aggregate_height",
	"max_height",
	"bumpiness",
	"holes",
	"holes_under_block",
	"complete_lines",
	"wells",
	"height_variance",
	"height_mean",
	"column_transitions",
	"row_transitions",
	"empty_columns",
	"high_columns",
	"peak_columns",
	"height_stddev",
	"occupied_cells",
}

func (f Feature) String() string {
	if f < 0 || int(f) >= FeatureCount {
		return "unknown"
	}
	return featureNames[f]
}

// ParseFeature resolves a feature by its snake_case name.
func ParseFeature(name string) (Feature, bool) {
	_, i, ok := lo.FindIndexOf(featureNames[:], func(n string) bool { return n == name })
	return Feature(i), ok
}

// Features is the fixed-length description of one board.
type Features [FeatureCount]float64

// Get returns a single feature value.
func (f Features) Get(x Feature) float64 {
	return f[x]
}

// ColumnHeights returns, per column, the distance from the floor to the top
// occupied cell. Empty columns have height 0.
func ColumnHeights(g tetris.Grid) [tetris.Width]int {
	var h [tetris.Width]int
	for x := 0; x < tetris.Width; x++ {
		for y := 0; y < tetris.Height; y++ {
			if g[y][x] {
				h[x] = tetris.Height - y
				break
			}
		}
	}
	return h
}

// Extract computes every feature of g. It is pure and deterministic.
func Extract(g tetris.Grid) Features {
	heights := ColumnHeights(g)
	hs := lo.Map(heights[:], func(h int, _ int) float64 { return float64(h) })
	highest := lo.Max(heights[:])
	mean, variance := stat.PopMeanVariance(hs, nil)

	var f Features
	f[AggregateHeight] = float64(lo.Sum(heights[:]))
	f[MaxHeight] = float64(highest)
	f[Bumpiness] = float64(bumpiness(heights))
	f[Holes] = float64(holes(g, heights))
	f[HolesUnderBlock] = float64(holesUnderBlock(g))
	f[CompleteLines] = float64(completeLines(g))
	f[Wells] = float64(wells(heights))
	f[HeightVariance] = variance
	f[HeightMean] = mean
	f[ColumnTransitions] = float64(columnTransitions(g))
	f[RowTransitions] = float64(rowTransitions(g))
	f[EmptyColumns] = float64(lo.Count(heights[:], 0))
	f[HighColumns] = float64(lo.CountBy(heights[:], func(h int) bool { return h > tetris.Height/2 }))
	f[PeakColumns] = float64(lo.Count(heights[:], highest))
	f[HeightStdDev] = stat.PopStdDev(hs, nil)
	f[OccupiedCells] = float64(g.Count())
	return f
}

func bumpiness(h [tetris.Width]int) int {
	sum := 0
	for i := 0; i < len(h)-1; i++ {
		d := h[i] - h[i+1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// holes counts empty cells between each column's top and the floor.
func holes(g tetris.Grid, heights [tetris.Width]int) int {
	n := 0
	for x, h := range heights {
		for y := tetris.Height - h; y < tetris.Height; y++ {
			if !g[y][x] {
				n++
			}
		}
	}
	return n
}

// holesUnderBlock counts empty cells that have any occupied cell above them.
func holesUnderBlock(g tetris.Grid) int {
	n := 0
	for x := 0; x < tetris.Width; x++ {
		seen := false
		for y := 0; y < tetris.Height; y++ {
			switch {
			case g[y][x]:
				seen = true
			case seen:
				n++
			}
		}
	}
	return n
}

func completeLines(g tetris.Grid) int {
	return lo.CountBy(g[:], func(row [tetris.Width]bool) bool {
		return lo.EveryBy(row[:], func(c bool) bool { return c })
	})
}

// wells sums, for columns lower than both neighbours, the depth below the
// shorter neighbour. The walls count as full height.
func wells(h [tetris.Width]int) int {
	n := 0
	for x := range h {
		left, right := tetris.Height, tetris.Height
		if x > 0 {
			left = h[x-1]
		}
		if x < len(h)-1 {
			right = h[x+1]
		}
		if h[x] < left && h[x] < right {
			n += min(left, right) - h[x]
		}
	}
	return n
}

// columnTransitions scans each column top to bottom, counting filled/empty
// changes. The row above the grid counts as filled.
func columnTransitions(g tetris.Grid) int {
	n := 0
	for x := 0; x < tetris.Width; x++ {
		prev := true
		for y := 0; y < tetris.Height; y++ {
			if g[y][x] != prev {
				n++
			}
			prev = g[y][x]
		}
	}
	return n
}

// rowTransitions is columnTransitions across rows, left wall filled.
func rowTransitions(g tetris.Grid) int {
	n := 0
	for y := 0; y < tetris.Height; y++ {
		prev := true
		for x := 0; x < tetris.Width; x++ {
			if g[y][x] != prev {
				n++
			}
			prev = g[y][x]
		}
	}
	return n
}
