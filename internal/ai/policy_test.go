package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

func TestHeuristicFillsWell(t *testing.T) {
	s := simSession(tetris.GridFromRows("#########."), tetris.ShapeI)

	m, err := NewHeuristicPolicy(HeuristicWeights()).Choose(s)
	require.NoError(t, err)
	assert.Equal(t, Move{Rotations: 0, Column: 9}, m)

	assert.Equal(t, 1, Apply(s, m))
	assert.Equal(t, 1, s.Lines())
}

func TestHeuristicScore(t *testing.T) {
	g := tetris.GridFromRows(
		".........#",
		".........#",
		".........#",
		"##########",
	)
	got := HeuristicWeights().Evaluate(Extract(g))
	expected := -0.510066*13 + 0.760666*1 - 0.184483*3
	assert.InDelta(t, expected, got, 1e-9)
}

func TestRankScoresBoardAfterClear(t *testing.T) {
	s := simSession(tetris.GridFromRows("#########."), tetris.ShapeI)
	height := EvaluatorFunc(func(f Features) float64 { return f.Get(AggregateHeight) })
	lines := EvaluatorFunc(func(f Features) float64 { return f.Get(CompleteLines) })

	byMove := map[Move]float64{}
	for _, sc := range Rank(s, height) {
		byMove[sc.Move] = sc.Score
	}
	require.Contains(t, byMove, Move{Rotations: 0, Column: 9})
	// The filled row is gone, only the rest of the I is left standing.
	assert.Equal(t, 3.0, byMove[Move{Rotations: 0, Column: 9}])

	for _, sc := range Rank(s, lines) {
		assert.Zero(t, sc.Score, "move %v", sc.Move)
	}
}

func TestGreedyPrefersClearingMove(t *testing.T) {
	s := simSession(tetris.GridFromRows("#########."), tetris.ShapeI)
	low := &GreedyPolicy{Label: "low", Evaluator: EvaluatorFunc(func(f Features) float64 {
		return -f.Get(AggregateHeight)
	})}

	m, err := low.Choose(s)
	require.NoError(t, err)
	assert.Equal(t, Move{Rotations: 0, Column: 9}, m)
}

func TestGreedyChoosesBestClonedOutcome(t *testing.T) {
	policy := NewHeuristicPolicy(HeuristicWeights())
	for seed := int64(1); seed <= 5; seed++ {
		s := tetris.NewSession(tetris.Options{Mode: tetris.ModeSimulation, Seed: seed})
		for i := 0; i < 40 && !s.GameOver(); i++ {
			var want Move
			best := 0.0
			for j, m := range Moves(s) {
				sim := s.Clone()
				Apply(sim, m)
				score := policy.Evaluator.Evaluate(Extract(sim.Board().Grid()))
				if j == 0 || score > best {
					want, best = m, score
				}
			}

			got, err := policy.Choose(s)
			require.NoError(t, err)
			require.Equal(t, want, got, "seed %d move %d", seed, i)
			Apply(s, got)
		}
	}
}

func TestGreedyTieGoesToFirstMove(t *testing.T) {
	s := simSession(tetris.Grid{}, tetris.ShapeO)
	flat := &GreedyPolicy{Label: "flat", Evaluator: EvaluatorFunc(func(Features) float64 { return 0 })}

	m, err := flat.Choose(s)
	require.NoError(t, err)
	assert.Equal(t, Move{Rotations: 0, Column: 0}, m)
}

func TestGreedyDoesNotMutateSession(t *testing.T) {
	s := simSession(tetris.GridFromRows("##..##..##"), tetris.ShapeT)
	before := s.Snapshot()
	_, err := NewHeuristicPolicy(HeuristicWeights()).Choose(s)
	require.NoError(t, err)
	assert.Equal(t, before, s.Snapshot())
}

func TestRankMatchesEnumeration(t *testing.T) {
	s := simSession(tetris.Grid{}, tetris.ShapeL)
	ranked := Rank(s, HeuristicWeights())
	cands := Enumerate(s)
	require.Len(t, ranked, len(cands))
	for i := range cands {
		assert.Equal(t, cands[i].Move, ranked[i].Move)
	}
}

func TestRandomPolicy(t *testing.T) {
	s := simSession(tetris.Grid{}, tetris.ShapeS)
	legal := Moves(s)

	a, b := NewRandomPolicy(42), NewRandomPolicy(42)
	for i := 0; i < 20; i++ {
		ma, err := a.Choose(s)
		require.NoError(t, err)
		mb, err := b.Choose(s)
		require.NoError(t, err)
		assert.Equal(t, ma, mb)
		assert.Contains(t, legal, ma)
	}
}

func TestPoliciesPassOnGameOver(t *testing.T) {
	rows := make([]string, tetris.Height)
	for i := range rows {
		rows[i] = "####.#####"
	}
	s := simSession(tetris.GridFromRows(rows...), tetris.ShapeO)
	s.HardDrop()
	require.True(t, s.GameOver())

	policies := []Policy{NewRandomPolicy(1), NewHeuristicPolicy(HeuristicWeights())}
	for _, p := range policies {
		t.Run(p.Name(), func(t *testing.T) {
			_, err := p.Choose(s)
			assert.True(t, errors.Is(err, ErrNoMoves))
		})
	}
}
