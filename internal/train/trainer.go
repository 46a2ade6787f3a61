package train

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vovakirdan/tui-tetris/internal/ai"
)

// Config controls an evolution run.
type Config struct {
	Topology       ai.Topology
	PopulationSize int
	Generations    int
	MutationRate   float64
	MutationStd    float64
	CrossoverRate  float64
	TournamentSize int
	EvalSeeds      []int64
	MaxMoves       int
	Workers        int    // Parallel evaluations, 0 means NumCPU
	Seed           uint64 // Drives selection, crossover and mutation

	// Resume seeds generation 0 with this genome followed by SeedClones
	// mutated copies of it. The rest of the population is random.
	Resume     []float64
	SeedClones int
}

// DefaultConfig returns the stock training parameters.
func DefaultConfig() Config {
	return Config{
		Topology:       ai.DefaultTopology,
		PopulationSize: 30,
		Generations:    50,
		MutationRate:   0.05,
		MutationStd:    0.1,
		CrossoverRate:  0.7,
		TournamentSize: 3,
		EvalSeeds:      []int64{0, 1, 2},
		MaxMoves:       700,
		SeedClones:     8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Topology == (ai.Topology{}) {
		c.Topology = d.Topology
	}
	if c.PopulationSize <= 0 {
		c.PopulationSize = d.PopulationSize
	}
	if c.TournamentSize <= 0 {
		c.TournamentSize = d.TournamentSize
	}
	if c.MutationStd <= 0 {
		c.MutationStd = d.MutationStd
	}
	if len(c.EvalSeeds) == 0 {
		c.EvalSeeds = d.EvalSeeds
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// Generation summarises one evaluated population.
type Generation struct {
	Index    int
	Best     float64
	Mean     float64
	Worst    float64
	BestEver float64
	Elapsed  time.Duration
}

// Trainer runs tournament-selection neuroevolution with elitism.
// It is not safe for concurrent use; evaluation fans out internally.
type Trainer struct {
	cfg    Config
	logger *log.Logger

	rng   *rand.Rand
	noise distuv.Normal

	population [][]float64
	generation int

	best        []float64
	bestFitness float64
}

// New validates cfg and builds generation 0. A nil logger discards output.
func New(cfg Config, logger *log.Logger) (*Trainer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Topology.Validate(); err != nil {
		return nil, err
	}
	if cfg.Resume != nil && len(cfg.Resume) != cfg.Topology.GenomeLength() {
		return nil, fmt.Errorf("train: cannot resume: %w: got %d, want %d",
			ai.ErrGenomeLength, len(cfg.Resume), cfg.Topology.GenomeLength())
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed^0xda942042e4dd58b5)
	t := &Trainer{
		cfg:         cfg,
		logger:      logger,
		rng:         rand.New(src),
		noise:       distuv.Normal{Mu: 0, Sigma: cfg.MutationStd, Src: src},
		bestFitness: math.Inf(-1),
	}
	t.population = t.initialPopulation()
	return t, nil
}

func (t *Trainer) initialPopulation() [][]float64 {
	pop := make([][]float64, 0, t.cfg.PopulationSize)
	if t.cfg.Resume != nil {
		pop = append(pop, slices.Clone(t.cfg.Resume))
		for i := 0; i < t.cfg.SeedClones && len(pop) < t.cfg.PopulationSize; i++ {
			clone := slices.Clone(t.cfg.Resume)
			pop = append(pop, mutate(clone, t.cfg.MutationRate, t.noise, t.rng))
		}
		t.logger.Info("resuming from genome", "clones", len(pop)-1)
	}
	for len(pop) < t.cfg.PopulationSize {
		pop = append(pop, ai.RandomGenome(t.cfg.Topology, t.rng))
	}
	return pop
}

// Config returns the effective configuration.
func (t *Trainer) Config() Config { return t.cfg }

// Population returns a copy of the current genomes.
func (t *Trainer) Population() [][]float64 {
	return lo.Map(t.population, func(g []float64, _ int) []float64 { return slices.Clone(g) })
}

// Best returns the fittest genome seen so far and its fitness. The genome
// is nil before the first generation has been evaluated.
func (t *Trainer) Best() ([]float64, float64) {
	return slices.Clone(t.best), t.bestFitness
}

// Generation returns how many generations have been evolved.
func (t *Trainer) Generation() int { return t.generation }

// Evaluate scores every genome of the current population in parallel.
func (t *Trainer) Evaluate(ctx context.Context) ([]float64, error) {
	fitness := make([]float64, len(t.population))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)
	for i, genome := range t.population {
		g.Go(func() error {
			f, err := Evaluate(ctx, t.cfg.Topology, genome, t.cfg.EvalSeeds, t.cfg.MaxMoves)
			if err != nil {
				return fmt.Errorf("genome %d: %w", i, err)
			}
			fitness[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fitness, nil
}

// Step evaluates the current population, records the best genome and
// replaces the population with the next generation.
func (t *Trainer) Step(ctx context.Context) (Generation, error) {
	start := time.Now()
	fitness, err := t.Evaluate(ctx)
	if err != nil {
		return Generation{}, err
	}

	ranked := rankDescending(fitness)
	top := ranked[0]
	if fitness[top] > t.bestFitness {
		t.bestFitness = fitness[top]
		t.best = slices.Clone(t.population[top])
	}

	next := make([][]float64, 0, t.cfg.PopulationSize)
	for _, i := range ranked[:min(eliteCount(t.cfg.PopulationSize), len(ranked))] {
		next = append(next, slices.Clone(t.population[i]))
	}
	for len(next) < t.cfg.PopulationSize {
		a := t.population[tournament(fitness, t.cfg.TournamentSize, t.rng)]
		b := t.population[tournament(fitness, t.cfg.TournamentSize, t.rng)]
		c1, c2 := crossover(a, b, t.cfg.CrossoverRate, t.rng)
		next = append(next, mutate(c1, t.cfg.MutationRate, t.noise, t.rng))
		if len(next) < t.cfg.PopulationSize {
			next = append(next, mutate(c2, t.cfg.MutationRate, t.noise, t.rng))
		}
	}
	t.population = next

	gen := Generation{
		Index:    t.generation,
		Best:     fitness[top],
		Mean:     stat.Mean(fitness, nil),
		Worst:    fitness[ranked[len(ranked)-1]],
		BestEver: t.bestFitness,
		Elapsed:  time.Since(start),
	}
	t.generation++
	t.logger.Info("generation done",
		"gen", gen.Index,
		"best", fmt.Sprintf("%.1f", gen.Best),
		"mean", fmt.Sprintf("%.1f", gen.Mean),
		"best_ever", fmt.Sprintf("%.1f", gen.BestEver),
		"elapsed", gen.Elapsed.Round(time.Millisecond))
	return gen, nil
}

// Run evolves Generations generations, calling onGeneration after each.
// It stops early when ctx is cancelled or the callback fails, returning
// the generations completed so far.
func (t *Trainer) Run(ctx context.Context, onGeneration func(Generation) error) ([]Generation, error) {
	var history []Generation
	for i := 0; i < t.cfg.Generations; i++ {
		gen, err := t.Step(ctx)
		if err != nil {
			return history, err
		}
		history = append(history, gen)
		if onGeneration != nil {
			if err := onGeneration(gen); err != nil {
				return history, err
			}
		}
	}
	t.logger.Debug("training finished", "generations", len(history), "best", t.bestFitness)
	return history, nil
}
