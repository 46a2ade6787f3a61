// Package train evolves network genomes for the learned evaluator.
package train

import (
	"context"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Fitness weights. Lines dominate so the search favours survival and
// clearing over score multipliers.
const (
	LinesWeight = 500.0
	ScoreWeight = 0.1
)

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed     int64
	Lines    int
	Score    int
	Moves    int
	GameOver bool
}

// Fitness is the scalar reward of a single game.
func (r GameResult) Fitness() float64 {
	return float64(r.Lines)*LinesWeight + float64(r.Score)*ScoreWeight
}

// PlayGame runs p on a fresh simulation session until game over, maxMoves
// placements, or a pass. maxMoves <= 0 means no cap.
func PlayGame(ctx context.Context, p ai.Policy, seed int64, maxMoves int) (GameResult, error) {
	s := tetris.NewSession(tetris.Options{Mode: tetris.ModeSimulation, Seed: seed})
	res := GameResult{Seed: seed}
	for !s.GameOver() && (maxMoves <= 0 || res.Moves < maxMoves) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		m, err := p.Choose(s)
		if err != nil {
			break
		}
		ai.Apply(s, m)
		res.Moves++
	}
	res.Lines = s.Lines()
	res.Score = s.Score()
	res.GameOver = s.GameOver()
	return res, nil
}

// Evaluate plays a genome on every seed and averages the fitness.
func Evaluate(ctx context.Context, topo ai.Topology, genome []float64, seeds []int64, maxMoves int) (float64, error) {
	net, err := ai.NewNetwork(topo, genome)
	if err != nil {
		return 0, err
	}
	if len(seeds) == 0 {
		seeds = []int64{0}
	}
	policy := ai.NewLearnedPolicy(net)
	results := make([]GameResult, 0, len(seeds))
	for _, seed := range seeds {
		r, err := PlayGame(ctx, policy, seed, maxMoves)
		if err != nil {
			return 0, err
		}
		results = append(results, r)
	}
	return lo.MeanBy(results, GameResult.Fitness), nil
}
