package ai

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Evaluator scores a board description. Higher is better.
type Evaluator interface {
	Evaluate(f Features) float64
}

// Linear is a weighted sum of features. Unused features have weight 0.
type Linear [FeatureCount]float64

// Evaluate implements Evaluator.
func (l Linear) Evaluate(f Features) float64 {
	return floats.Dot(l[:], f[:])
}

// HeuristicWeights is the hand-tuned medium tier: tall, holey and bumpy
// boards score lower, completed rows higher.
func HeuristicWeights() Linear {
	var w Linear
	w[AggregateHeight] = -0.510066
	w[CompleteLines] = 0.760666
	w[Holes] = -0.35663
	w[Bumpiness] = -0.184483
	return w
}

// LinearFromNames builds weights keyed by feature name.
func LinearFromNames(weights map[string]float64) (Linear, error) {
	var w Linear
	for name, v := range weights {
		f, ok := ParseFeature(name)
		if !ok {
			return Linear{}, fmt.Errorf("ai: unknown feature %q", name)
		}
		w[f] = v
	}
	return w, nil
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(f Features) float64

// Evaluate implements Evaluator.
func (fn EvaluatorFunc) Evaluate(f Features) float64 { return fn(f) }
