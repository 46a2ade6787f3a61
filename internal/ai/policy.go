package ai

import (
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Policy picks the next placement for a session. It must not mutate s.
type Policy interface {
	Name() string
	Choose(s *tetris.Session) (Move, error)
}

// RandomPolicy plays a uniformly chosen legal move.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy returns a random policy with its own seeded source.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))}
}

// Name implements Policy.
func (p *RandomPolicy) Name() string { return "random" }

// Choose implements Policy.
func (p *RandomPolicy) Choose(s *tetris.Session) (Move, error) {
	moves := Moves(s)
	if len(moves) == 0 {
		return Move{}, ErrNoMoves
	}
	return lo.SampleBy(moves, p.rng.IntN), nil
}

// GreedyPolicy plays the move whose resulting board the evaluator likes
// best. Ties go to the first move in enumeration order.
type GreedyPolicy struct {
	Label     string
	Evaluator Evaluator
}

// NewHeuristicPolicy is a greedy policy over w.
func NewHeuristicPolicy(w Linear) *GreedyPolicy {
	return &GreedyPolicy{Label: "heuristic", Evaluator: w}
}

// NewLearnedPolicy is a greedy policy over a network.
func NewLearnedPolicy(n *Network) *GreedyPolicy {
	return &GreedyPolicy{Label: "learned", Evaluator: n}
}

// Name implements Policy.
func (p *GreedyPolicy) Name() string { return p.Label }

// Scored is a candidate with its evaluation.
type Scored struct {
	Candidate
	Score float64
}

// Rank evaluates the board every candidate leaves behind on s, in
// enumeration order.
func Rank(s *tetris.Session, e Evaluator) []Scored {
	return lo.Map(Enumerate(s), func(c Candidate, _ int) Scored {
		return Scored{Candidate: c, Score: e.Evaluate(Extract(c.Outcome(s)))}
	})
}

// Choose implements Policy.
func (p *GreedyPolicy) Choose(s *tetris.Session) (Move, error) {
	ranked := Rank(s, p.Evaluator)
	if len(ranked) == 0 {
		return Move{}, ErrNoMoves
	}
	best, _ := lo.MaxIndexBy(ranked, func(a, b Scored) bool { return a.Score > b.Score })
	return best.Move, nil
}
