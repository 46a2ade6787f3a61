package train

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vovakirdan/tui-tetris/internal/ai"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 6
	cfg.Generations = 3
	cfg.EvalSeeds = []int64{0, 1}
	cfg.MaxMoves = 25
	cfg.Workers = 2
	cfg.Seed = 11
	return cfg
}

func TestEliteCount(t *testing.T) {
	tests := []struct{ pop, expected int }{
		{1, 1}, {5, 1}, {10, 1}, {11, 2}, {30, 3}, {31, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, eliteCount(tt.pop), "pop %d", tt.pop)
	}
}

func TestRankDescending(t *testing.T) {
	assert.Equal(t, []int{1, 3, 2, 0}, rankDescending([]float64{1, 5, 2, 5}))
}

func TestTournamentPrefersFitter(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	assert.Equal(t, 1, tournament([]float64{1, 5, 3}, 60, rng))
	idx := tournament([]float64{1, 5, 3}, 1, rng)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 3)
}

func TestCrossover(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	a := []float64{1, 1, 1, 1, 1, 1}
	b := []float64{2, 2, 2, 2, 2, 2}

	c1, c2 := crossover(a, b, 0, rng)
	assert.Equal(t, a, c1)
	assert.Equal(t, b, c2)
	c1[0] = 9
	assert.Equal(t, 1.0, a[0], "children must not alias parents")

	for i := 0; i < 20; i++ {
		c1, c2 = crossover(a, b, 1, rng)
		require.Len(t, c1, len(a))
		assert.Equal(t, 1.0, c1[0])
		assert.Equal(t, 2.0, c1[len(c1)-1])
		assert.Equal(t, 2.0, c2[0])
		assert.Equal(t, 1.0, c2[len(c2)-1])
		for j := range c1 {
			assert.Equal(t, 3.0, c1[j]+c2[j])
		}
	}
}

func TestMutate(t *testing.T) {
	src := rand.NewPCG(3, 3)
	rng := rand.New(src)
	noise := distuv.Normal{Mu: 0, Sigma: 0.1, Src: src}

	g := []float64{0, 0, 0, 0}
	mutate(g, 0, noise, rng)
	assert.Equal(t, []float64{0, 0, 0, 0}, g)

	mutate(g, 1, noise, rng)
	for _, v := range g {
		assert.NotZero(t, v)
		assert.Less(t, v, 1.0)
		assert.Greater(t, v, -1.0)
	}
}

func TestGameResultFitness(t *testing.T) {
	r := GameResult{Lines: 2, Score: 300}
	assert.InDelta(t, 1030.0, r.Fitness(), 1e-9)
}

func TestPlayGameRespectsMoveCap(t *testing.T) {
	res, err := PlayGame(context.Background(), ai.NewRandomPolicy(5), 5, 12)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Moves, 12)
	if !res.GameOver {
		assert.Equal(t, 12, res.Moves)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := ai.RandomGenome(ai.DefaultTopology, rand.New(rand.NewPCG(4, 4)))
	seeds := []int64{0, 1}

	a, err := Evaluate(context.Background(), ai.DefaultTopology, g, seeds, 30)
	require.NoError(t, err)
	b, err := Evaluate(context.Background(), ai.DefaultTopology, g, seeds, 30)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Evaluate(context.Background(), ai.DefaultTopology, g[:10], seeds, 30)
	assert.ErrorIs(t, err, ai.ErrGenomeLength)
}

func TestBestFitnessNeverDecreases(t *testing.T) {
	tr, err := New(smallConfig(), nil)
	require.NoError(t, err)

	history, err := tr.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, history, 3)

	for i, g := range history {
		assert.GreaterOrEqual(t, g.Best, g.Worst)
		assert.GreaterOrEqual(t, g.BestEver, g.Best)
		if i > 0 {
			assert.GreaterOrEqual(t, g.BestEver, history[i-1].BestEver)
		}
	}

	best, fitness := tr.Best()
	require.Len(t, best, ai.DefaultTopology.GenomeLength())
	assert.Equal(t, history[len(history)-1].BestEver, fitness)

	cfg := tr.Config()
	again, err := Evaluate(context.Background(), cfg.Topology, best, cfg.EvalSeeds, cfg.MaxMoves)
	require.NoError(t, err)
	assert.Equal(t, fitness, again)
}

func TestElitesSurvive(t *testing.T) {
	tr, err := New(smallConfig(), nil)
	require.NoError(t, err)

	_, err = tr.Step(context.Background())
	require.NoError(t, err)

	best, _ := tr.Best()
	assert.Equal(t, best, tr.Population()[0])
	assert.Len(t, tr.Population(), 6)
	assert.Equal(t, 1, tr.Generation())
}

func TestTrainingIsReproducible(t *testing.T) {
	cfg := smallConfig()
	cfg.Generations = 2

	a, err := New(cfg, nil)
	require.NoError(t, err)
	cfg.Workers = 1
	b, err := New(cfg, nil)
	require.NoError(t, err)

	ha, err := a.Run(context.Background(), nil)
	require.NoError(t, err)
	hb, err := b.Run(context.Background(), nil)
	require.NoError(t, err)

	for i := range ha {
		assert.Equal(t, ha[i].Best, hb[i].Best)
		assert.Equal(t, ha[i].Mean, hb[i].Mean)
	}
	assert.Equal(t, a.Population(), b.Population())
}

func TestResumeSeedsPopulation(t *testing.T) {
	cfg := smallConfig()
	cfg.Resume = ai.RandomGenome(cfg.Topology, rand.New(rand.NewPCG(8, 8)))
	cfg.SeedClones = 3

	tr, err := New(cfg, nil)
	require.NoError(t, err)
	pop := tr.Population()
	require.Len(t, pop, cfg.PopulationSize)
	assert.Equal(t, cfg.Resume, pop[0])
	for _, g := range pop[1:4] {
		assert.Len(t, g, len(cfg.Resume))
	}

	cfg.Resume = []float64{1, 2, 3}
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, ai.ErrGenomeLength)
}

func TestStepHonoursCancellation(t *testing.T) {
	tr, err := New(smallConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Step(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, tr.Generation())
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "history.parquet")
	w, err := CreateHistory(path, 30)
	require.NoError(t, err)

	gens := []Generation{
		{Index: 0, Best: 10, Mean: 5, Worst: 1, BestEver: 10, Elapsed: 1500 * time.Millisecond},
		{Index: 1, Best: 8, Mean: 6, Worst: 2, BestEver: 10, Elapsed: 2 * time.Second},
	}
	for _, g := range gens {
		require.NoError(t, w.Write(g))
	}
	assert.Equal(t, 2, w.Rows())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Write(gens[0]), ErrHistoryClosed)

	rows, err := ReadHistory(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, HistoryRow{Generation: 0, Best: 10, Mean: 5, Worst: 1, BestEver: 10, ElapsedMs: 1500, Population: 30}, rows[0])
	assert.Equal(t, int32(1), rows[1].Generation)
	assert.Equal(t, int64(2000), rows[1].ElapsedMs)
}

func TestHistoryErrors(t *testing.T) {
	_, err := CreateHistory("", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "train: cannot create history")

	_, err = ReadHistory(filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "train: cannot open history")
}
