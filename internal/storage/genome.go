package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-tetris/internal/ai"
)

// ErrNoGenome is returned when no genome has been saved at the path.
var ErrNoGenome = errors.New("storage: no saved genome")

// SaveGenome writes genes as a JSON array of numbers. The file is replaced
// atomically so a crash never leaves a truncated genome behind.
func SaveGenome(path string, genes []float64) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	data, err := json.Marshal(genes)
	if err != nil {
		return fmt.Errorf("storage: cannot encode genome: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".genome-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot write genome: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write genome: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write genome: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: cannot write genome: %w", err)
	}
	return nil
}

// LoadGenome reads a genome written by SaveGenome. A missing file yields
// ErrNoGenome; anything unreadable is wrapped.
func LoadGenome(path string) ([]float64, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoGenome, path)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read genome %s: %w", path, err)
	}

	var genes []float64
	if err := json.Unmarshal(data, &genes); err != nil {
		return nil, fmt.Errorf("storage: cannot decode genome %s: %w", path, err)
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrNoGenome, path)
	}
	return genes, nil
}

// NetworkLoader returns a loader for ai.Options that reads the genome at
// path when a learned policy is first built.
func NetworkLoader(path string, topo ai.Topology) func() (*ai.Network, error) {
	return func() (*ai.Network, error) {
		genes, err := LoadGenome(path)
		if err != nil {
			return nil, err
		}
		return ai.NewNetwork(topo, genes)
	}
}
