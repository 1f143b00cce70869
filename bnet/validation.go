package bnet

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Validate checks that the network is ready for inference: every
// variable's declared parents must exist, have the declared cardinality,
// and be connected by a matching edge; every edge target must list the
// edge source among its parents; and the edge relation must be acyclic.
// All consistency violations are collected and reported together.
func (n *Network) Validate() error {
	var err error

	for _, name := range n.Names() {
		v := n.variables[name]
		for i, parent := range v.parents {
			pv, ok := n.variables[parent]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("%w: variable %q declares parent %q",
					ErrUnknownVariable, name, parent))
				continue
			}
			if pv.cardinality != v.parentCards[i] {
				err = multierr.Append(err, fmt.Errorf("%w: variable %q declares parent %q with cardinality %d, but it has %d",
					ErrShapeMismatch, name, parent, v.parentCards[i], pv.cardinality))
			}
			if !n.hasEdge(parent, name) {
				err = multierr.Append(err, fmt.Errorf("%w: variable %q declares parent %q but edge %s -> %s is missing",
					ErrInconsistentNetwork, name, parent, parent, name))
			}
		}
		for _, child := range n.children[name] {
			if !slices.Contains(n.variables[child].parents, name) {
				err = multierr.Append(err, fmt.Errorf("%w: edge %s -> %s exists but %q does not list %q as a parent",
					ErrInconsistentNetwork, name, child, child, name))
			}
		}
	}
	if err != nil {
		return err
	}

	return n.detectCycles()
}

// detectCycles uses DFS with a recursion stack to find cycles.
// Start nodes are visited in lexicographic order so the reported cycle
// path is deterministic.
func (n *Network) detectCycles() error {
	visited := make(map[string]bool, len(n.variables))
	recStack := make(map[string]bool, len(n.variables))

	var dfs func(string, []string) error
	dfs = func(name string, path []string) error {
		visited[name] = true
		recStack[name] = true
		path = append(path, name)

		for _, child := range n.children[name] {
			if !visited[child] {
				if err := dfs(child, path); err != nil {
					return err
				}
			} else if recStack[child] {
				return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(append(path, child), " -> "))
			}
		}

		recStack[name] = false
		return nil
	}

	for _, name := range n.Names() {
		if !visited[name] {
			if err := dfs(name, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// TopologicalOrder returns the variables in a deterministic order where
// every parent precedes all of its children, using Kahn's algorithm.
// Ties among eligible variables break lexicographically by name, so
// repeated calls on an unmutated network return identical sequences.
func (n *Network) TopologicalOrder() ([]*Variable, error) {
	inDegree := make(map[string]int, len(n.variables))
	for name := range n.variables {
		inDegree[name] = 0
	}
	for _, children := range n.children {
		for _, child := range children {
			inDegree[child]++
		}
	}

	queue := make([]string, 0, len(n.variables))
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	slices.Sort(queue)

	result := make([]*Variable, 0, len(n.variables))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, n.variables[name])

		children := slices.Clone(n.children[name])
		slices.Sort(children)
		for _, child := range children {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = insertSorted(queue, child)
			}
		}
	}

	if len(result) != len(n.variables) {
		return nil, fmt.Errorf("%w: topological sort left %d variables unordered",
			ErrCycleDetected, len(n.variables)-len(result))
	}

	return result, nil
}

// insertSorted inserts an item into a sorted slice, keeping it sorted.
func insertSorted(slice []string, item string) []string {
	idx := sort.Search(len(slice), func(i int) bool {
		return slice[i] >= item
	})
	return slices.Insert(slice, idx, item)
}
