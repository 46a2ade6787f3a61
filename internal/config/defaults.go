package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Speed:          tetris.DefaultSpeed,
			PlayerName:     "Player",
			TickRate:       60,
			FallMillis:     tetris.DefaultFallMillis,
			FastFallMillis: tetris.DefaultFastFallMillis,

			AutoplayDifficulty: string(ai.Hard),
		},
		AI: AIConfig{
			NInputs:        ai.DefaultTopology.Inputs,
			NHidden:        ai.DefaultTopology.Hidden,
			NOutputs:       ai.DefaultTopology.Outputs,
			PopulationSize: 30,
			Generations:    50,
			MutationRate:   0.05,
			MutationStd:    0.1,
			CrossoverRate:  0.7,
			TournamentSize: 3,
			EvalSeeds:      []int64{0, 1, 2},
			MaxMoves:       700,
			ResumeFromBest: true,
			SeedClones:     8,
			BestGenomeFile: "~/.tetris/best_genome.json",
			AIMoveDelay:    8,
		},
		Difficulty: DefaultDifficulty(),
		Versus: VersusConfig{
			CPUMoveDelay:  20,
			MaxBoards:     3,
			CPUDifficulty: string(ai.Medium),
		},
		Storage: StorageConfig{
			DBPath: "~/.tetris/scores.db",
		},
	}
}
