package train

import (
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// tournament samples k indices uniformly and returns the fittest.
// Earlier samples win ties.
func tournament(fitness []float64, k int, rng *rand.Rand) int {
	best := rng.IntN(len(fitness))
	for i := 1; i < k; i++ {
		c := rng.IntN(len(fitness))
		if fitness[c] > fitness[best] {
			best = c
		}
	}
	return best
}

// crossover swaps the tails of a and b after a uniform cut point in
// [1, len-1] with probability rate. Otherwise the parents pass through.
// The results never alias the inputs.
func crossover(a, b []float64, rate float64, rng *rand.Rand) ([]float64, []float64) {
	if len(a) < 2 || rng.Float64() >= rate {
		return slices.Clone(a), slices.Clone(b)
	}
	cut := 1 + rng.IntN(len(a)-1)
	c1 := slices.Concat(a[:cut], b[cut:])
	c2 := slices.Concat(b[:cut], a[cut:])
	return c1, c2
}

// mutate adds noise to each gene with probability rate, in place.
func mutate(g []float64, rate float64, noise distuv.Normal, rng *rand.Rand) []float64 {
	for i := range g {
		if rng.Float64() < rate {
			g[i] += noise.Rand()
		}
	}
	return g
}

// eliteCount is ceil(n/10), at least one.
func eliteCount(n int) int {
	return max(1, (n+9)/10)
}

// rankDescending returns indices ordered by fitness, highest first. Equal
// fitness keeps population order.
func rankDescending(fitness []float64) []int {
	idx := make([]int, len(fitness))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case fitness[a] > fitness[b]:
			return -1
		case fitness[a] < fitness[b]:
			return 1
		}
		return 0
	})
	return idx
}
