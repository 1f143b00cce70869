// Package bnet models discrete Bayesian networks: variables with
// conditional probability tables (CPTs) connected by directed edges.
//
// A network is built in two steps: register every Variable, then declare
// the parent -> child edges. Validate checks that the declared edges and
// each variable's CPT parents agree and that the graph is acyclic;
// TopologicalOrder returns a deterministic parents-first ordering
// (Kahn's algorithm, lexicographic tie-break).
//
//	rain := bnet.MustNewVariable("rain", 2, [][]float64{{0.8}, {0.2}})
//	sprinkler := bnet.MustNewVariable("sprinkler", 2,
//	    [][]float64{{0.6, 0.99}, {0.4, 0.01}},
//	    bnet.WithParents([]string{"rain"}, []int{2}),
//	)
//
//	net := bnet.NewNetwork()
//	net.AddVariable(rain)
//	net.AddVariable(sprinkler)
//	net.AddEdge("rain", "sprinkler")
//
// Inference over a finalized network lives in the parent package.
package bnet
