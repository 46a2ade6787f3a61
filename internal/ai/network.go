package ai

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrGenomeLength is returned when a genome does not fit the topology.
	ErrGenomeLength = errors.New("ai: genome length does not match topology")
	// ErrTopology is returned for layer sizes the evaluator cannot use.
	ErrTopology = errors.New("ai: invalid network topology")
)

// Topology is the layer sizes of a one-hidden-layer network.
type Topology struct {
	Inputs  int `yaml:"n_inputs"`
	Hidden  int `yaml:"n_hidden"`
	Outputs int `yaml:"n_outputs"`
}

// DefaultTopology feeds every feature into 32 hidden units and one score.
var DefaultTopology = Topology{Inputs: FeatureCount, Hidden: 32, Outputs: 1}

// GenomeLength is the number of genes: W1, b1, W2, b2 in that order.
func (t Topology) GenomeLength() int {
	return t.Inputs*t.Hidden + t.Hidden + t.Hidden*t.Outputs + t.Outputs
}

// Validate checks that every layer is non-empty and the inputs fit the
// feature vector.
func (t Topology) Validate() error {
	if t.Inputs < 1 || t.Inputs > FeatureCount || t.Hidden < 1 || t.Outputs < 1 {
		return fmt.Errorf("%w: %d-%d-%d", ErrTopology, t.Inputs, t.Hidden, t.Outputs)
	}
	return nil
}

// Network is a feed-forward net decoded from a flat genome:
// hidden = tanh(x·W1 + b1), out = hidden·W2 + b2.
type Network struct {
	topo  Topology
	genes []float64

	w1 *mat.Dense // Inputs x Hidden
	b1 *mat.VecDense
	w2 *mat.Dense // Hidden x Outputs
	b2 *mat.VecDense
}

// NewNetwork decodes genome. The genome is copied.
func NewNetwork(t Topology, genome []float64) (*Network, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(genome) != t.GenomeLength() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrGenomeLength, len(genome), t.GenomeLength())
	}
	genes := slices.Clone(genome)

	n := &Network{topo: t, genes: genes}
	i := 0
	take := func(k int) []float64 {
		s := genes[i : i+k : i+k]
		i += k
		return s
	}
	n.w1 = mat.NewDense(t.Inputs, t.Hidden, take(t.Inputs*t.Hidden))
	n.b1 = mat.NewVecDense(t.Hidden, take(t.Hidden))
	n.w2 = mat.NewDense(t.Hidden, t.Outputs, take(t.Hidden*t.Outputs))
	n.b2 = mat.NewVecDense(t.Outputs, take(t.Outputs))
	return n, nil
}

// RandomNetwork draws every gene uniformly from [-1, 1).
func RandomNetwork(t Topology, rng *rand.Rand) (*Network, error) {
	return NewNetwork(t, RandomGenome(t, rng))
}

// RandomGenome returns a genome with genes uniform in [-1, 1).
func RandomGenome(t Topology, rng *rand.Rand) []float64 {
	g := make([]float64, t.GenomeLength())
	for i := range g {
		g[i] = rng.Float64()*2 - 1
	}
	return g
}

// Topology returns the layer sizes.
func (n *Network) Topology() Topology { return n.topo }

// Genome returns a copy of the flat parameter vector.
func (n *Network) Genome() []float64 { return slices.Clone(n.genes) }

// Forward runs the network on the first Inputs entries of x.
func (n *Network) Forward(x []float64) []float64 {
	in := mat.NewVecDense(n.topo.Inputs, slices.Clone(x[:n.topo.Inputs]))

	var hidden mat.VecDense
	hidden.MulVec(n.w1.T(), in)
	hidden.AddVec(&hidden, n.b1)
	for j := 0; j < hidden.Len(); j++ {
		hidden.SetVec(j, math.Tanh(hidden.AtVec(j)))
	}

	var out mat.VecDense
	out.MulVec(n.w2.T(), &hidden)
	out.AddVec(&out, n.b2)
	return slices.Clone(out.RawVector().Data)
}

// Evaluate implements Evaluator using the first output.
func (n *Network) Evaluate(f Features) float64 {
	return n.Forward(f[:])[0]
}
