package ai

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenomeLength(t *testing.T) {
	assert.Equal(t, 16*32+32+32+1, DefaultTopology.GenomeLength())
	assert.Equal(t, 577, DefaultTopology.GenomeLength())
}

func TestNewNetworkRejectsWrongLength(t *testing.T) {
	_, err := NewNetwork(DefaultTopology, make([]float64, 10))
	assert.ErrorIs(t, err, ErrGenomeLength)
}

func TestTopologyValidate(t *testing.T) {
	tests := []struct {
		name string
		topo Topology
		ok   bool
	}{
		{"default", DefaultTopology, true},
		{"small", Topology{Inputs: 4, Hidden: 2, Outputs: 1}, true},
		{"no hidden", Topology{Inputs: 16, Hidden: 0, Outputs: 1}, false},
		{"too many inputs", Topology{Inputs: 17, Hidden: 8, Outputs: 1}, false},
		{"no outputs", Topology{Inputs: 16, Hidden: 8, Outputs: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.topo.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTopology)
			}
		})
	}
}

func TestForwardKnownWeights(t *testing.T) {
	topo := Topology{Inputs: 2, Hidden: 2, Outputs: 1}
	// W1 row-major [in][hidden], b1, W2 [hidden][out], b2.
	genome := []float64{
		1, 0,
		0, 2,
		0.5, -0.5,
		3, -1,
		0.25,
	}
	n, err := NewNetwork(topo, genome)
	require.NoError(t, err)

	out := n.Forward([]float64{0.2, 0.1})
	h0 := math.Tanh(0.2*1 + 0.1*0 + 0.5)
	h1 := math.Tanh(0.2*0 + 0.1*2 - 0.5)
	require.Len(t, out, 1)
	assert.InDelta(t, 3*h0-h1+0.25, out[0], 1e-12)
}

func TestGenomeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	n, err := RandomNetwork(DefaultTopology, rng)
	require.NoError(t, err)

	again, err := NewNetwork(DefaultTopology, n.Genome())
	require.NoError(t, err)

	var f Features
	for i := range f {
		f[i] = float64(i) * 0.37
	}
	assert.Equal(t, n.Evaluate(f), again.Evaluate(f))
	assert.Equal(t, n.Genome(), again.Genome())
}

func TestNetworkCopiesGenome(t *testing.T) {
	genome := RandomGenome(DefaultTopology, rand.New(rand.NewPCG(3, 4)))
	n, err := NewNetwork(DefaultTopology, genome)
	require.NoError(t, err)

	var f Features
	f[AggregateHeight] = 4
	before := n.Evaluate(f)
	for i := range genome {
		genome[i] = 0
	}
	assert.Equal(t, before, n.Evaluate(f))
}

func TestRandomGenomeRange(t *testing.T) {
	g := RandomGenome(DefaultTopology, rand.New(rand.NewPCG(5, 6)))
	require.Len(t, g, DefaultTopology.GenomeLength())
	for _, v := range g {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}
