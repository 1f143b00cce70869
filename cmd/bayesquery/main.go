// bayesquery loads a Bayesian network from a YAML definition and runs a
// single posterior query against it.
//
//	bayesquery -network sprinkler.yaml -query rain -evidence grass_wet=1
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr/funcr"

	"github.com/birdayz/bayes"
	"github.com/birdayz/bayes/byaml"
)

func main() {
	var (
		networkPath = flag.String("network", "", "path to YAML network definition")
		queryName   = flag.String("query", "", "variable to compute the posterior of")
		evidenceArg = flag.String("evidence", "", "observed states, e.g. rain=1,sprinkler=0")
		parallelism = flag.Int("parallel", 1, "evaluate query states on up to n goroutines")
		showTables  = flag.Bool("tables", false, "print every variable's CPT before the result")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *networkPath == "" || *queryName == "" {
		flag.Usage()
		os.Exit(2)
	}

	evidence, err := parseEvidence(*evidenceArg)
	if err != nil {
		fatal(err)
	}

	net, err := byaml.Load(*networkPath)
	if err != nil {
		fatal(err)
	}

	opts := []bayes.Option{bayes.WithParallelism(*parallelism)}
	if *verbose {
		log := funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{Verbosity: 1})
		opts = append(opts, bayes.WithLogr(log))
	}

	engine, err := bayes.New(net, opts...)
	if err != nil {
		fatal(err)
	}

	if *showTables {
		for _, name := range net.Names() {
			v, _ := net.Variable(name)
			fmt.Println(v)
		}
	}

	posterior, err := engine.Query(*queryName, evidence)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("P(%s | %s)\n", *queryName, *evidenceArg)
	for state, p := range posterior {
		fmt.Printf("  %s(%d) = %.6f\n", *queryName, state, p)
	}
}

// parseEvidence parses "name=state,name=state" into an evidence map.
func parseEvidence(arg string) (map[string]int, error) {
	evidence := make(map[string]int)
	if arg == "" {
		return evidence, nil
	}
	for _, pair := range strings.Split(arg, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("malformed evidence %q, want name=state", pair)
		}
		state, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("evidence %q: state must be an integer: %w", pair, err)
		}
		evidence[name] = state
	}
	return evidence, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "bayesquery:", err)
	os.Exit(1)
}
