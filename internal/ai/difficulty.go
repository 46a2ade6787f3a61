package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty names a CPU skill tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the tiers from weakest to strongest.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty normalises name. Unknown names resolve to Medium and
// report ok=false.
func ParseDifficulty(name string) (d Difficulty, ok bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(name))) {
	case Easy:
		return Easy, true
	case Medium:
		return Medium, true
	case Hard:
		return Hard, true
	}
	return Medium, false
}

// PolicyKind selects how a tier picks moves.
type PolicyKind string

const (
	PolicyRandom    PolicyKind = "random"
	PolicyHeuristic PolicyKind = "heuristic"
	PolicyLearned   PolicyKind = "learned"
)

// Tier is the behaviour of one difficulty.
type Tier struct {
	Policy    PolicyKind `yaml:"policy"`
	MoveDelay int        `yaml:"move_delay"`
}

// DefaultTiers maps each difficulty to its policy and frames between moves.
func DefaultTiers() map[Difficulty]Tier {
	return map[Difficulty]Tier{
		Easy:   {Policy: PolicyRandom, MoveDelay: 30},
		Medium: {Policy: PolicyHeuristic, MoveDelay: 20},
		Hard:   {Policy: PolicyLearned, MoveDelay: 12},
	}
}

// Options supplies what the policy builders need.
type Options struct {
	// Seed drives the random policy.
	Seed uint64
	// Weights overrides HeuristicWeights when non-nil, keyed by feature name.
	Weights map[string]float64
	// Network loads the learned evaluator. Nil means none is available.
	Network func() (*Network, error)
}

// BuildPolicy always returns a usable policy. When kind cannot be built it
// falls back from learned to heuristic to random, and the returned error
// describes every step that failed.
func BuildPolicy(kind PolicyKind, o Options) (Policy, error) {
	var errs []error
	switch kind {
	case PolicyLearned:
		n, err := loadNetwork(o)
		if err == nil {
			return NewLearnedPolicy(n), nil
		}
		errs = append(errs, fmt.Errorf("learned policy: %w", err))
		fallthrough
	case PolicyHeuristic:
		w, err := heuristicWeights(o)
		if err == nil {
			return NewHeuristicPolicy(w), errors.Join(errs...)
		}
		errs = append(errs, fmt.Errorf("heuristic policy: %w", err))
	case PolicyRandom:
	default:
		errs = append(errs, fmt.Errorf("ai: unknown policy %q", kind))
	}
	return NewRandomPolicy(o.Seed), errors.Join(errs...)
}

func loadNetwork(o Options) (*Network, error) {
	if o.Network == nil {
		return nil, errors.New("no genome available")
	}
	return o.Network()
}

func heuristicWeights(o Options) (Linear, error) {
	if o.Weights == nil {
		return HeuristicWeights(), nil
	}
	return LinearFromNames(o.Weights)
}
