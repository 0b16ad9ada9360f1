package compose

import (
	"gencompose/internal/diag"
)

// Lint inspects the input tree and may record diagnostics. A lint never
// produces output; reporting nothing is its only way to signal success.
//
// Implementations must be stateless with respect to a run: any
// configuration is fixed at construction time, and the same value must be
// safely callable with different trees. Recoverable domain errors are
// translated into diagnostics, not panics.
type Lint[T any] interface {
	Lint(input *T, c *diag.Collector)
}

// Expand derives one output fragment from the input tree. Returning
// ok=false means "nothing to contribute" and is a normal, diagnostic-free
// outcome — it is never treated as an error by the pipeline.
//
// Expands only run while the collector is clean, so implementations may
// assume every invariant established by the lints that ran before them.
type Expand[T, O any] interface {
	Expand(input *T, c *diag.Collector) (O, bool)
}

// LintFunc adapts a plain function to the Lint interface.
type LintFunc[T any] func(input *T, c *diag.Collector)

func (f LintFunc[T]) Lint(input *T, c *diag.Collector) { f(input, c) }

// ExpandFunc adapts a plain function to the Expand interface.
type ExpandFunc[T, O any] func(input *T, c *diag.Collector) (O, bool)

func (f ExpandFunc[T, O]) Expand(input *T, c *diag.Collector) (O, bool) {
	return f(input, c)
}

// ParseFunc builds a tree from raw source text. A failed parse is
// described by the returned diagnostic, not by an error value.
type ParseFunc[T any] func(src []byte) (*T, *diag.Diagnostic)

// Echo is an expand stage that simply returns the input tree.
type Echo[T any] struct{}

func (Echo[T]) Expand(input *T, _ *diag.Collector) (*T, bool) {
	return input, true
}
