package main

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/ai"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/train"
)

var (
	flagGenerations int
	flagPopulation  int
	flagWorkers     int
	flagHistory     string
	flagGenomeOut   string
	flagNoResume    bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Evolve the network behind the hard CPU",
	Long: `Run tournament-selection neuroevolution over the network that
scores placements for the learned CPU. Every genome plays one game per
evaluation seed and its fitness is the mean of 500 * lines + score / 10.

The best genome ever seen is written to the ai.best_genome_file of the
config (or --out) whenever it improves, so an interrupted run keeps its
progress. With ai.resume_from_best the previous best seeds the first
generation.

Examples:
  tetris train
  tetris train --generations 100 --population 60
  tetris train --history runs/history.parquet --seed 7
  tetris train --no-resume --out ./genome.json`,
	Args: cobra.NoArgs,
	Run:  runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Generations to evolve (0 = from config)")
	trainCmd.Flags().IntVar(&flagPopulation, "population", 0, "Population size (0 = from config)")
	trainCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel evaluations (0 = from config, then NumCPU)")
	trainCmd.Flags().StringVar(&flagHistory, "history", "", "Write per-generation statistics to this parquet file")
	trainCmd.Flags().StringVar(&flagGenomeOut, "out", "", "Genome output path (default from config)")
	trainCmd.Flags().BoolVar(&flagNoResume, "no-resume", false, "Start from a random population")
}

func runTrain(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("tetris-train")

	if flagGenerations > 0 {
		cfg.AI.Generations = flagGenerations
	}
	if flagPopulation > 0 {
		cfg.AI.PopulationSize = flagPopulation
	}
	if flagWorkers > 0 {
		cfg.AI.Workers = flagWorkers
	}
	out := cfg.AI.BestGenomeFile
	if flagGenomeOut != "" {
		out = flagGenomeOut
	}

	seed := core.ResolveSeed(flagSeed)
	tc := cfg.AI.TrainConfig(uint64(seed))
	if cfg.AI.ResumeFromBest && !flagNoResume {
		tc.Resume = loadResume(cfg.AI.BestGenomeFile, tc.Topology, logger)
	}

	trainer, err := train.New(tc, logger)
	if err != nil {
		fail("%v", err)
	}
	logger.Info("training started",
		"population", tc.PopulationSize,
		"generations", tc.Generations,
		"genes", tc.Topology.GenomeLength(),
		"seed", seed,
		"resumed", tc.Resume != nil)

	var history *train.HistoryWriter
	if flagHistory != "" {
		history, err = train.CreateHistory(flagHistory, tc.PopulationSize)
		if err != nil {
			fail("%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	saved := math.Inf(-1)
	gens, runErr := trainer.Run(ctx, func(g train.Generation) error {
		if history != nil {
			if err := history.Write(g); err != nil {
				return err
			}
		}
		if g.BestEver > saved {
			best, fitness := trainer.Best()
			if err := storage.SaveGenome(out, best); err != nil {
				return err
			}
			saved = fitness
			logger.Debug("best genome saved", "path", out, "fitness", fitness)
		}
		return nil
	})

	if history != nil {
		if err := history.Close(); err != nil {
			logger.Error("could not close history", "error", err)
		} else {
			logger.Info("history written", "path", history.Path(), "rows", history.Rows())
		}
	}

	_, best := trainer.Best()
	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("training interrupted", "generations", len(gens), "best", best)
	case runErr != nil:
		logger.Error("training failed", "generations", len(gens), "error", runErr)
		os.Exit(1)
	default:
		logger.Info("training finished", "generations", len(gens), "best", best, "genome", out)
	}
}

// loadResume reads the previous best genome. A missing or mismatched
// genome starts from scratch.
func loadResume(path string, topo ai.Topology, logger *log.Logger) []float64 {
	genes, err := storage.LoadGenome(path)
	switch {
	case errors.Is(err, storage.ErrNoGenome):
		logger.Info("no saved genome, starting from scratch", "path", path)
		return nil
	case err != nil:
		logger.Warn("could not load genome, starting from scratch", "error", err)
		return nil
	case len(genes) != topo.GenomeLength():
		logger.Warn("saved genome does not fit the topology, starting from scratch",
			"genes", len(genes), "want", topo.GenomeLength())
		return nil
	}
	return genes
}
