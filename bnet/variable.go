package bnet

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// columnSumTolerance is the absolute tolerance used when validating that
// every table column sums to 1. Exact comparison would reject tables
// assembled from rounded literals.
const columnSumTolerance = 1e-9

// Variable is a discrete random variable together with its conditional
// probability table (CPT). The table has one row per state and one column
// per combination of parent states; each column is the conditional
// distribution over this variable's states given that parent combination.
// An unconditional variable has a single column.
//
// Columns are addressed with a mixed-radix encoding over the parent
// states: the first-listed parent varies fastest (stride 1), and each
// subsequent parent's stride is the product of the cardinalities of all
// parents listed before it. The parent order therefore has to match how
// the table was authored.
//
// A Variable is validated at construction and immutable afterwards.
type Variable struct {
	name        string
	cardinality int
	parents     []string
	parentCards []int
	table       [][]float64
}

// VariableOption configures NewVariable.
type VariableOption func(*Variable)

// WithParents declares the variable's parents and their cardinalities.
// Order is significant: it determines the column encoding of the table.
var WithParents = func(parents []string, cardinalities []int) VariableOption {
	return func(v *Variable) {
		v.parents = slices.Clone(parents)
		v.parentCards = slices.Clone(cardinalities)
	}
}

// NewVariable constructs a validated Variable. The table must have
// exactly cardinality rows, and every row must have one entry per parent
// state combination (a single entry when there are no parents). Every
// column must sum to 1 within tolerance.
func NewVariable(name string, cardinality int, table [][]float64, opts ...VariableOption) (*Variable, error) {
	v := &Variable{
		name:        name,
		cardinality: cardinality,
	}
	for _, opt := range opts {
		opt(v)
	}

	if len(v.parents) != len(v.parentCards) {
		return nil, fmt.Errorf("%w: variable %q declares %d parents but %d parent cardinalities",
			ErrArityMismatch, name, len(v.parents), len(v.parentCards))
	}
	if cardinality < 1 {
		return nil, fmt.Errorf("%w: variable %q has non-positive cardinality %d",
			ErrShapeMismatch, name, cardinality)
	}
	for i, card := range v.parentCards {
		if card < 1 {
			return nil, fmt.Errorf("%w: variable %q declares non-positive cardinality %d for parent %q",
				ErrShapeMismatch, name, card, v.parents[i])
		}
	}

	columns := v.columns()
	if len(table) != cardinality {
		return nil, fmt.Errorf("%w: variable %q has %d states but table has %d rows",
			ErrShapeMismatch, name, cardinality, len(table))
	}
	v.table = make([][]float64, cardinality)
	for row := range table {
		if len(table[row]) != columns {
			return nil, fmt.Errorf("%w: variable %q needs %d table columns but row %d has %d",
				ErrShapeMismatch, name, columns, row, len(table[row]))
		}
		v.table[row] = slices.Clone(table[row])
	}

	for col := 0; col < columns; col++ {
		var sum float64
		for row := 0; row < cardinality; row++ {
			sum += v.table[row][col]
		}
		if math.Abs(sum-1) > columnSumTolerance {
			return nil, fmt.Errorf("%w: variable %q column %d sums to %v",
				ErrNonNormalizedColumn, name, col, sum)
		}
	}

	return v, nil
}

// MustNewVariable is like NewVariable but panics on error.
func MustNewVariable(name string, cardinality int, table [][]float64, opts ...VariableOption) *Variable {
	v, err := NewVariable(name, cardinality, table, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the variable's name.
func (v *Variable) Name() string {
	return v.name
}

// Cardinality returns the number of states the variable can take.
func (v *Variable) Cardinality() int {
	return v.cardinality
}

// Parents returns the declared parent names in table-encoding order.
func (v *Variable) Parents() []string {
	return slices.Clone(v.parents)
}

// columns returns the number of table columns, the product of all parent
// cardinalities. The product of no parents is 1.
func (v *Variable) columns() int {
	columns := 1
	for _, card := range v.parentCards {
		columns *= card
	}
	return columns
}

// Probability returns P(state | parent assignment). parentStates must
// contain an entry for every declared parent; extra keys are ignored, so
// callers may pass a whole evidence map. The lookup is pure.
func (v *Variable) Probability(state int, parentStates map[string]int) (float64, error) {
	if state < 0 || state >= v.cardinality {
		return 0, fmt.Errorf("%w: variable %q has no state %d (cardinality %d)",
			ErrInvalidState, v.name, state, v.cardinality)
	}

	column := 0
	stride := 1
	for i, parent := range v.parents {
		parentState, ok := parentStates[parent]
		if !ok {
			return 0, fmt.Errorf("%w: variable %q has no value for parent %q",
				ErrMissingParentValue, v.name, parent)
		}
		if parentState < 0 || parentState >= v.parentCards[i] {
			return 0, fmt.Errorf("%w: parent %q of variable %q has no state %d (cardinality %d)",
				ErrInvalidState, parent, v.name, parentState, v.parentCards[i])
		}
		column += parentState * stride
		stride *= v.parentCards[i]
	}

	return v.table[state][column], nil
}

// String renders the CPT as an ASCII grid: one header row per parent
// showing its state in each column, then one row per state. Display only.
func (v *Variable) String() string {
	columns := v.columns()
	sep := "+----------+" + strings.Repeat("----------+", columns)

	var b strings.Builder
	stride := 1
	for i, parent := range v.parents {
		b.WriteString(sep)
		b.WriteByte('\n')
		b.WriteByte('|')
		b.WriteString(centered(parent))
		b.WriteByte('|')
		for col := 0; col < columns; col++ {
			b.WriteString(centered(fmt.Sprintf("%s(%d)", parent, (col/stride)%v.parentCards[i])))
			b.WriteByte('|')
		}
		b.WriteByte('\n')
		stride *= v.parentCards[i]
	}

	for state := 0; state < v.cardinality; state++ {
		b.WriteString(sep)
		b.WriteByte('\n')
		b.WriteByte('|')
		b.WriteString(centered(fmt.Sprintf("%s(%d)", v.name, state)))
		b.WriteByte('|')
		for col := 0; col < columns; col++ {
			b.WriteString(centered(fmt.Sprintf("%.4f", v.table[state][col])))
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	b.WriteString(sep)
	b.WriteByte('\n')

	return b.String()
}

// centered pads s to the fixed 10-rune cell width of the grid.
func centered(s string) string {
	const width = 10
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
