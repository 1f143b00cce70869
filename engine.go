// Package bayes performs exact posterior inference over discrete
// Bayesian networks by enumeration: it sums out every unobserved
// non-query variable along the network's topological order and
// normalizes the result. Cost is exponential in the number of unobserved
// variables, which is inherent to exact enumeration; WithMaxUnobserved
// bounds it explicitly.
package bayes

import (
	"errors"
	"fmt"

	"github.com/birdayz/bayes/bnet"
	"github.com/go-logr/logr"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// ErrZeroEvidence is returned when the supplied evidence has probability
// zero under the network, leaving the posterior undefined.
var ErrZeroEvidence = errors.New("evidence has zero probability under the network")

// ErrBudgetExceeded is returned when a query would enumerate more
// unobserved variables than the configured limit allows.
var ErrBudgetExceeded = errors.New("enumeration budget exceeded")

// Engine runs enumeration queries against one finalized network.
//
// New validates the network and caches its topological order; the
// network must not be mutated afterwards, since the cached order would
// silently go stale. The Engine itself is read-only after construction,
// so concurrent Query calls are safe.
type Engine struct {
	net   *bnet.Network
	order []*bnet.Variable

	log           logr.Logger
	parallelism   int
	maxUnobserved int
}

// New validates the network, computes its topological order and returns
// an engine ready for queries. A cyclic or inconsistent network is
// rejected here, never queried.
func New(net *bnet.Network, opts ...Option) (*Engine, error) {
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("network validation failed: %w", err)
	}
	order, err := net.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		net:         net,
		order:       order,
		log:         logr.Discard(),
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Query computes the posterior distribution of the named variable given
// the evidence, a mapping from variable name to observed state index.
// The result has one entry per state, in state order, and sums to 1.
func (e *Engine) Query(name string, evidence map[string]int) ([]float64, error) {
	query, ok := e.net.Variable(name)
	if !ok {
		return nil, fmt.Errorf("%w: query variable %q", bnet.ErrUnknownVariable, name)
	}
	for _, observed := range maps.Keys(evidence) {
		if _, ok := e.net.Variable(observed); !ok {
			return nil, fmt.Errorf("%w: evidence variable %q", bnet.ErrUnknownVariable, observed)
		}
	}
	if err := e.checkBudget(name, evidence); err != nil {
		return nil, err
	}

	weights := make([]float64, query.Cardinality())
	if e.parallelism > 1 {
		grp := errgroup.Group{}
		grp.SetLimit(e.parallelism)
		for state := range weights {
			state := state
			grp.Go(func() error {
				weight, err := e.stateWeight(name, state, evidence)
				if err != nil {
					return err
				}
				weights[state] = weight
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return nil, err
		}
	} else {
		for state := range weights {
			weight, err := e.stateWeight(name, state, evidence)
			if err != nil {
				return nil, err
			}
			weights[state] = weight
		}
	}

	e.log.V(1).Info("query evaluated",
		"variable", name, "observed", len(evidence), "weights", weights)

	return normalize(weights)
}

// stateWeight computes the unnormalized posterior weight of one query
// state by pinning it in a private copy of the evidence.
func (e *Engine) stateWeight(name string, state int, evidence map[string]int) (float64, error) {
	pinned := make(map[string]int, len(evidence)+1)
	maps.Copy(pinned, evidence)
	pinned[name] = state
	return e.enumerateAll(e.order, pinned)
}

// enumerateAll recursively sums the joint probability over all
// assignments of the remaining variables that are consistent with the
// evidence. vars must be a suffix of the topological order, consumed
// front to back: parents precede children, so by the time a variable is
// evaluated every one of its parents already has a value in evidence.
// Each branch of a summation extends its own copy of the evidence map,
// so sibling branches never interfere.
func (e *Engine) enumerateAll(vars []*bnet.Variable, evidence map[string]int) (float64, error) {
	if len(vars) == 0 {
		return 1.0, nil
	}
	y, rest := vars[0], vars[1:]

	if state, ok := evidence[y.Name()]; ok {
		p, err := y.Probability(state, evidence)
		if err != nil {
			return 0, err
		}
		tail, err := e.enumerateAll(rest, evidence)
		if err != nil {
			return 0, err
		}
		return p * tail, nil
	}

	var total float64
	for state := 0; state < y.Cardinality(); state++ {
		p, err := y.Probability(state, evidence)
		if err != nil {
			return 0, err
		}
		if p == 0 {
			continue
		}
		branch := maps.Clone(evidence)
		branch[y.Name()] = state
		tail, err := e.enumerateAll(rest, branch)
		if err != nil {
			return 0, err
		}
		total += p * tail
	}
	return total, nil
}

// checkBudget rejects queries whose unobserved-variable count exceeds
// the configured limit. Enumeration cost grows exponentially with that
// count, so an unbounded query can run effectively forever.
func (e *Engine) checkBudget(name string, evidence map[string]int) error {
	if e.maxUnobserved <= 0 {
		return nil
	}
	unobserved := 0
	for _, v := range e.order {
		if v.Name() == name {
			continue
		}
		if _, ok := evidence[v.Name()]; !ok {
			unobserved++
		}
	}
	if unobserved > e.maxUnobserved {
		return fmt.Errorf("%w: query has %d unobserved variables, limit is %d",
			ErrBudgetExceeded, unobserved, e.maxUnobserved)
	}
	return nil
}

// normalize scales weights so they sum to 1. All-zero weights mean the
// evidence itself is impossible under the network; that is a modeling
// error and is reported, never returned as a zero or NaN vector.
func normalize(weights []float64) ([]float64, error) {
	var z float64
	for _, w := range weights {
		z += w
	}
	if z == 0 {
		return nil, ErrZeroEvidence
	}
	posterior := make([]float64, len(weights))
	for i, w := range weights {
		posterior[i] = w / z
	}
	return posterior, nil
}
