package bnet

import (
	"errors"
	"fmt"
	"slices"
)

// Network is a directed acyclic graph of Variables. Edges run from a
// parent to its direct children and are keyed by variable name, so
// lookups do not depend on object identity.
//
// A Network is built incrementally (AddVariable, then AddEdge) from a
// single goroutine. Once finalized it is treated as read-only; concurrent
// queries against a finalized Network are safe.
type Network struct {
	variables map[string]*Variable
	children  map[string][]string
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		variables: make(map[string]*Variable),
		children:  make(map[string][]string),
	}
}

// AddVariable registers a variable by name.
func (n *Network) AddVariable(v *Variable) error {
	if _, exists := n.variables[v.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, v.name)
	}
	n.variables[v.name] = v
	return nil
}

// AddEdge records that child directly depends on parent. Both endpoints
// must already be registered. Declaring an edge does not by itself verify
// that the child's CPT lists the parent; Validate checks that before
// inference.
func (n *Network) AddEdge(parent, child string) error {
	if _, ok := n.variables[parent]; !ok {
		return fmt.Errorf("%w: edge parent %q", ErrUnknownVariable, parent)
	}
	if _, ok := n.variables[child]; !ok {
		return fmt.Errorf("%w: edge child %q", ErrUnknownVariable, child)
	}
	if slices.Contains(n.children[parent], child) {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, parent, child)
	}
	n.children[parent] = append(n.children[parent], child)
	return nil
}

// Variable returns the registered variable with the given name.
func (n *Network) Variable(name string) (*Variable, bool) {
	v, ok := n.variables[name]
	return v, ok
}

// Len returns the number of registered variables.
func (n *Network) Len() int {
	return len(n.variables)
}

// Children returns the direct children of the named variable.
func (n *Network) Children(name string) []string {
	return slices.Clone(n.children[name])
}

// Names returns all variable names in lexicographic order.
func (n *Network) Names() []string {
	names := make([]string, 0, len(n.variables))
	for name := range n.variables {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// hasEdge reports whether the edge parent -> child was declared.
func (n *Network) hasEdge(parent, child string) bool {
	return slices.Contains(n.children[parent], child)
}

var (
	ErrShapeMismatch       = errors.New("table shape mismatch")
	ErrNonNormalizedColumn = errors.New("table column does not sum to 1")
	ErrArityMismatch       = errors.New("parent arity mismatch")
	ErrInvalidState        = errors.New("invalid state")
	ErrMissingParentValue  = errors.New("missing parent value")
	ErrDuplicateVariable   = errors.New("variable already exists")
	ErrDuplicateEdge       = errors.New("edge already exists")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrInconsistentNetwork = errors.New("edges and declared parents disagree")
	ErrCycleDetected       = errors.New("cycle detected in network")
)
