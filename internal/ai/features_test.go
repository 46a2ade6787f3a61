package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

func TestExtractEmptyBoard(t *testing.T) {
	f := Extract(tetris.Grid{})

	assert.Equal(t, 0.0, f.Get(AggregateHeight))
	assert.Equal(t, 0.0, f.Get(MaxHeight))
	assert.Equal(t, 0.0, f.Get(Holes))
	assert.Equal(t, 0.0, f.Get(Wells))
	assert.Equal(t, float64(tetris.Width), f.Get(ColumnTransitions))
	assert.Equal(t, float64(tetris.Height), f.Get(RowTransitions))
	assert.Equal(t, float64(tetris.Width), f.Get(EmptyColumns))
	assert.Equal(t, float64(tetris.Width), f.Get(PeakColumns))
	assert.Equal(t, 0.0, f.Get(OccupiedCells))
}

func TestExtractStack(t *testing.T) {
	g := tetris.GridFromRows(
		"#.........",
		"##.#......",
		"#.##.#####",
	)
	assert.Equal(t, [tetris.Width]int{3, 2, 1, 2, 0, 1, 1, 1, 1, 1}, ColumnHeights(g))

	f := Extract(g)
	tests := []struct {
		feature  Feature
		expected float64
	}{
		{AggregateHeight, 13},
		{MaxHeight, 3},
		{Bumpiness, 6},
		{Holes, 1},
		{HolesUnderBlock, 1},
		{CompleteLines, 0},
		{Wells, 2},
		{HeightMean, 1.3},
		{HeightVariance, 0.61},
		{ColumnTransitions, 20},
		{RowTransitions, 25},
		{EmptyColumns, 1},
		{HighColumns, 0},
		{PeakColumns, 1},
		{HeightStdDev, math.Sqrt(0.61)},
		{OccupiedCells, 12},
	}
	for _, tt := range tests {
		t.Run(tt.feature.String(), func(t *testing.T) {
			assert.InDelta(t, tt.expected, f.Get(tt.feature), 1e-9)
		})
	}
}

func TestExtractCompleteLinesAndHighColumns(t *testing.T) {
	rows := make([]string, 12)
	for i := range rows {
		rows[i] = "#........."
	}
	rows = append(rows, "##########", "##########")
	f := Extract(tetris.GridFromRows(rows...))

	assert.Equal(t, 2.0, f.Get(CompleteLines))
	assert.Equal(t, 1.0, f.Get(HighColumns))
	assert.Equal(t, 14.0, f.Get(MaxHeight))
}

func TestExtractIsPure(t *testing.T) {
	g := tetris.GridFromRows("##..##..##", "#.#.#.#.#.")
	before := g
	a := Extract(g)
	b := Extract(g)
	assert.Equal(t, a, b)
	assert.Equal(t, before, g)
}

func TestFeatureNames(t *testing.T) {
	for i := 0; i < FeatureCount; i++ {
		f := Feature(i)
		got, ok := ParseFeature(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, got)
	}
	_, ok := ParseFeature("nope")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Feature(FeatureCount).String())
}
