package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

const fileName = "tetris.yaml"

// Load loads the tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Keys missing from the file keep their defaults, and the result is
// normalized before it is returned.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultTetrisYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps the speed and replaces zero or invalid values with
// their defaults.
func (c *Config) Normalize() {
	d := Default()

	if c.Game.Speed == 0 {
		c.Game.Speed = d.Game.Speed
	}
	c.Game.Speed = tetris.ClampSpeed(c.Game.Speed)
	c.Game.TickRate = positive(c.Game.TickRate, d.Game.TickRate)
	c.Game.FallMillis = positive(c.Game.FallMillis, d.Game.FallMillis)
	c.Game.FastFallMillis = positive(c.Game.FastFallMillis, d.Game.FastFallMillis)
	if c.Game.PlayerName == "" {
		c.Game.PlayerName = d.Game.PlayerName
	}
	if c.Game.AutoplayDifficulty == "" {
		c.Game.AutoplayDifficulty = d.Game.AutoplayDifficulty
	}
	auto, _ := ai.ParseDifficulty(c.Game.AutoplayDifficulty)
	c.Game.AutoplayDifficulty = string(auto)

	a := &c.AI
	if err := a.Topology().Validate(); err != nil {
		a.NInputs, a.NHidden, a.NOutputs = d.AI.NInputs, d.AI.NHidden, d.AI.NOutputs
	}
	a.PopulationSize = positive(a.PopulationSize, d.AI.PopulationSize)
	a.Generations = positive(a.Generations, d.AI.Generations)
	a.TournamentSize = positive(a.TournamentSize, d.AI.TournamentSize)
	a.MaxMoves = positive(a.MaxMoves, d.AI.MaxMoves)
	a.AIMoveDelay = positive(a.AIMoveDelay, d.AI.AIMoveDelay)
	a.MutationRate = lo.Clamp(a.MutationRate, 0, 1)
	a.CrossoverRate = lo.Clamp(a.CrossoverRate, 0, 1)
	if a.MutationStd <= 0 {
		a.MutationStd = d.AI.MutationStd
	}
	if len(a.EvalSeeds) == 0 {
		a.EvalSeeds = d.AI.EvalSeeds
	}
	a.Workers = max(a.Workers, 0)
	a.SeedClones = max(a.SeedClones, 0)
	if a.BestGenomeFile == "" {
		a.BestGenomeFile = d.AI.BestGenomeFile
	}

	normalizeTier(&c.Difficulty.Easy, d.Difficulty.Easy)
	normalizeTier(&c.Difficulty.Medium, d.Difficulty.Medium)
	normalizeTier(&c.Difficulty.Hard, d.Difficulty.Hard)

	c.Versus.CPUMoveDelay = positive(c.Versus.CPUMoveDelay, d.Versus.CPUMoveDelay)
	c.Versus.MaxBoards = lo.Clamp(c.Versus.MaxBoards, 2, 3)
	diff, _ := ai.ParseDifficulty(c.Versus.CPUDifficulty)
	c.Versus.CPUDifficulty = string(diff)

	if c.Storage.DBPath == "" {
		c.Storage.DBPath = d.Storage.DBPath
	}
}

func positive(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// userConfigPath returns the path to user config file.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
