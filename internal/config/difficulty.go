package config

import (
	"github.com/vovakirdan/tui-tetris/internal/ai"
)

// DifficultyConfig holds the CPU behaviour of each tier.
type DifficultyConfig struct {
	Easy   ai.Tier `yaml:"easy"`
	Medium ai.Tier `yaml:"medium"`
	Hard   ai.Tier `yaml:"hard"`
}

// DefaultDifficulty returns the stock tiers.
func DefaultDifficulty() DifficultyConfig {
	tiers := ai.DefaultTiers()
	return DifficultyConfig{
		Easy:   tiers[ai.Easy],
		Medium: tiers[ai.Medium],
		Hard:   tiers[ai.Hard],
	}
}

// Get returns the tier for d. Anything unrecognised is medium.
func (c DifficultyConfig) Get(d ai.Difficulty) ai.Tier {
	switch d {
	case ai.Easy:
		return c.Easy
	case ai.Hard:
		return c.Hard
	}
	return c.Medium
}

// Tier resolves a tier by name. Unknown names fall back to medium and
// report ok=false.
func (c *Config) Tier(name string) (d ai.Difficulty, tier ai.Tier, ok bool) {
	d, ok = ai.ParseDifficulty(name)
	tier = c.Difficulty.Get(d)
	if tier.MoveDelay <= 0 {
		tier.MoveDelay = c.Versus.CPUMoveDelay
	}
	return d, tier, ok
}

// PolicyOptions assembles what ai.BuildPolicy needs. network may be nil
// when no trained genome is at hand.
func (c *Config) PolicyOptions(seed uint64, network func() (*ai.Network, error)) ai.Options {
	var weights map[string]float64
	if len(c.AI.HeuristicWeights) > 0 {
		weights = c.AI.HeuristicWeights
	}
	return ai.Options{Seed: seed, Weights: weights, Network: network}
}

func normalizeTier(t *ai.Tier, def ai.Tier) {
	switch t.Policy {
	case ai.PolicyRandom, ai.PolicyHeuristic, ai.PolicyLearned:
	default:
		t.Policy = def.Policy
	}
	if t.MoveDelay < 0 {
		t.MoveDelay = 0
	}
}
