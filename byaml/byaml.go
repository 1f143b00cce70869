// Package byaml loads Bayesian network definitions from YAML.
//
// A definition lists every variable with its CPT; edges are derived from
// the parents lists, so a loaded network is consistent by construction:
//
//	variables:
//	  - name: rain
//	    states: 2
//	    table: [[0.8], [0.2]]
//	  - name: sprinkler
//	    states: 2
//	    parents: [rain]
//	    parent_states: [2]
//	    table: [[0.6, 0.99], [0.4, 0.01]]
package byaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/birdayz/bayes/bnet"
)

type networkDef struct {
	Variables []variableDef `yaml:"variables"`
}

type variableDef struct {
	Name         string      `yaml:"name"`
	States       int         `yaml:"states"`
	Parents      []string    `yaml:"parents"`
	ParentStates []int       `yaml:"parent_states"`
	Table        [][]float64 `yaml:"table"`
}

// Load reads a network definition file.
func Load(path string) (*bnet.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	net, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return net, nil
}

// Parse builds a validated network from YAML bytes.
func Parse(data []byte) (*bnet.Network, error) {
	var def networkDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("unmarshal network definition: %w", err)
	}

	net := bnet.NewNetwork()
	for _, vd := range def.Variables {
		var opts []bnet.VariableOption
		if len(vd.Parents) > 0 || len(vd.ParentStates) > 0 {
			opts = append(opts, bnet.WithParents(vd.Parents, vd.ParentStates))
		}
		v, err := bnet.NewVariable(vd.Name, vd.States, vd.Table, opts...)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vd.Name, err)
		}
		if err := net.AddVariable(v); err != nil {
			return nil, err
		}
	}
	for _, vd := range def.Variables {
		for _, parent := range vd.Parents {
			if err := net.AddEdge(parent, vd.Name); err != nil {
				return nil, fmt.Errorf("edge %s -> %s: %w", parent, vd.Name, err)
			}
		}
	}

	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}
