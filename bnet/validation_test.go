package bnet

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTopologicalOrder(t *testing.T) {
	t.Run("parents precede children", func(t *testing.T) {
		net := newChainNetwork(t)
		order, err := net.TopologicalOrder()
		assert.NoError(t, err)
		assert.Equal(t, net.Len(), len(order))

		position := make(map[string]int, len(order))
		for i, v := range order {
			position[v.Name()] = i
		}
		for _, name := range net.Names() {
			for _, child := range net.Children(name) {
				assert.True(t, position[name] < position[child])
			}
		}
	})

	t.Run("lexicographic tie-break", func(t *testing.T) {
		net := NewNetwork()
		// Three roots with no edges; eligibility alone does not order
		// them, the name does.
		for _, name := range []string{"c", "a", "b"} {
			assert.NoError(t, net.AddVariable(MustNewVariable(name, 2, [][]float64{{0.5}, {0.5}})))
		}

		order, err := net.TopologicalOrder()
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(order))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		net := newChainNetwork(t)
		first, err := net.TopologicalOrder()
		assert.NoError(t, err)
		for i := 0; i < 50; i++ {
			again, err := net.TopologicalOrder()
			assert.NoError(t, err)
			assert.Equal(t, names(first), names(again))
		}
	})

	t.Run("cycle detected", func(t *testing.T) {
		net := newCyclicNetwork(t)
		_, err := net.TopologicalOrder()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrCycleDetected))
	})
}

func TestValidateDetectsCycles(t *testing.T) {
	net := newCyclicNetwork(t)
	err := net.Validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))
}

// newCyclicNetwork builds A -> B -> A with consistent parent
// declarations, so only cycle detection can reject it.
func newCyclicNetwork(t *testing.T) *Network {
	t.Helper()

	net := NewNetwork()
	a := MustNewVariable("A", 2, [][]float64{
		{0.5, 0.2},
		{0.5, 0.8},
	}, WithParents([]string{"B"}, []int{2}))
	b := MustNewVariable("B", 2, [][]float64{
		{0.5, 0.2},
		{0.5, 0.8},
	}, WithParents([]string{"A"}, []int{2}))
	assert.NoError(t, net.AddVariable(a))
	assert.NoError(t, net.AddVariable(b))
	assert.NoError(t, net.AddEdge("A", "B"))
	assert.NoError(t, net.AddEdge("B", "A"))
	return net
}

func names(vars []*Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name()
	}
	return out
}
