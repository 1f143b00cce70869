package bayes

import "github.com/go-logr/logr"

// Option configures an Engine.
type Option func(*Engine)

// WithLogr sets the logger. The default discards all output.
var WithLogr = func(log logr.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithParallelism fans the per-state evaluation of a query out over up
// to n goroutines. The enumeration branches are independent, so this
// changes nothing about the result.
var WithParallelism = func(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// WithMaxUnobserved rejects queries with more than n unobserved
// variables with ErrBudgetExceeded instead of enumerating them.
// Zero (the default) means no limit.
var WithMaxUnobserved = func(n int) Option {
	return func(e *Engine) {
		e.maxUnobserved = n
	}
}
