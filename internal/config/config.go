// Package config provides YAML-based configuration loading and
// difficulty tiers for the tetris platform.
package config

import (
	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/train"
)

// Config is the full configuration surface.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	AI         AIConfig         `yaml:"ai"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Versus     VersusConfig     `yaml:"versus"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GameConfig defines solo play parameters.
type GameConfig struct {
	Speed          int    `yaml:"speed"`
	PlayerName     string `yaml:"player_name"`
	TickRate       int    `yaml:"tick_rate"`
	FallMillis     int    `yaml:"fall_ms"`
	FastFallMillis int    `yaml:"fast_fall_ms"`

	// AutoplayDifficulty is the tier that drives a solo board in autoplay.
	AutoplayDifficulty string `yaml:"autoplay_difficulty"`
}

// AIConfig defines the network shape, the evolution run and the autoplay
// cadence.
type AIConfig struct {
	NInputs  int `yaml:"n_inputs"`
	NHidden  int `yaml:"n_hidden"`
	NOutputs int `yaml:"n_outputs"`

	PopulationSize int     `yaml:"population_size"`
	Generations    int     `yaml:"generations"`
	MutationRate   float64 `yaml:"mutation_rate"`
	MutationStd    float64 `yaml:"mutation_std"`
	CrossoverRate  float64 `yaml:"crossover_rate"`
	TournamentSize int     `yaml:"tournament_size"`
	EvalSeeds      []int64 `yaml:"eval_seeds"`
	MaxMoves       int     `yaml:"max_moves"`
	Workers        int     `yaml:"workers"`

	ResumeFromBest bool   `yaml:"resume_from_best"`
	SeedClones     int    `yaml:"seed_clones"`
	BestGenomeFile string `yaml:"best_genome_file"`

	// AIMoveDelay is the frames between autoplay moves on a solo board.
	AIMoveDelay int `yaml:"ai_move_delay"`

	// HeuristicWeights overrides the medium tier weights, keyed by feature
	// name. Empty keeps the built-in weights.
	HeuristicWeights map[string]float64 `yaml:"heuristic_weights,omitempty"`
}

// VersusConfig defines local match parameters.
type VersusConfig struct {
	CPUMoveDelay  int    `yaml:"cpu_move_delay"`
	MaxBoards     int    `yaml:"max_boards"`
	CPUDifficulty string `yaml:"cpu_difficulty"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Topology returns the network shape of the ai section.
func (c AIConfig) Topology() ai.Topology {
	return ai.Topology{Inputs: c.NInputs, Hidden: c.NHidden, Outputs: c.NOutputs}
}

// TrainConfig converts the ai section into trainer parameters. The resume
// genome is left to the caller.
func (c AIConfig) TrainConfig(seed uint64) train.Config {
	return train.Config{
		Topology:       c.Topology(),
		PopulationSize: c.PopulationSize,
		Generations:    c.Generations,
		MutationRate:   c.MutationRate,
		MutationStd:    c.MutationStd,
		CrossoverRate:  c.CrossoverRate,
		TournamentSize: c.TournamentSize,
		EvalSeeds:      append([]int64(nil), c.EvalSeeds...),
		MaxMoves:       c.MaxMoves,
		Workers:        c.Workers,
		Seed:           seed,
		SeedClones:     c.SeedClones,
	}
}
