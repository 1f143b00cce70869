package byaml

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/birdayz/bayes"
	"github.com/birdayz/bayes/bnet"
)

const chainDef = `
variables:
  - name: A
    states: 2
    table: [[0.8], [0.2]]
  - name: B
    states: 2
    parents: [A]
    parent_states: [2]
    table: [[0.5, 0.2], [0.5, 0.8]]
`

func TestParse(t *testing.T) {
	t.Run("edges derive from parents", func(t *testing.T) {
		net, err := Parse([]byte(chainDef))
		assert.NoError(t, err)
		assert.Equal(t, 2, net.Len())
		assert.Equal(t, []string{"B"}, net.Children("A"))
	})

	t.Run("loaded network is queryable", func(t *testing.T) {
		net, err := Parse([]byte(chainDef))
		assert.NoError(t, err)

		engine, err := bayes.New(net)
		assert.NoError(t, err)

		posterior, err := engine.Query("B", nil)
		assert.NoError(t, err)
		assert.True(t, math.Abs(posterior[0]-0.44) <= 1e-9)
		assert.True(t, math.Abs(posterior[1]-0.56) <= 1e-9)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("variables: ["))
		assert.Error(t, err)
	})

	t.Run("invalid table surfaces the variable name", func(t *testing.T) {
		_, err := Parse([]byte(`
variables:
  - name: A
    states: 2
    table: [[0.8], [0.1]]
`))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, bnet.ErrNonNormalizedColumn))
	})

	t.Run("parents without parent_states", func(t *testing.T) {
		_, err := Parse([]byte(`
variables:
  - name: A
    states: 2
    table: [[0.8], [0.2]]
  - name: B
    states: 2
    parents: [A]
    table: [[0.5, 0.2], [0.5, 0.8]]
`))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, bnet.ErrArityMismatch))
	})

	t.Run("parent not defined", func(t *testing.T) {
		_, err := Parse([]byte(`
variables:
  - name: B
    states: 2
    parents: [A]
    parent_states: [2]
    table: [[0.5, 0.2], [0.5, 0.8]]
`))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, bnet.ErrUnknownVariable))
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads a definition file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chain.yaml")
		assert.NoError(t, os.WriteFile(path, []byte(chainDef), 0o644))

		net, err := Load(path)
		assert.NoError(t, err)
		assert.Equal(t, 2, net.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
