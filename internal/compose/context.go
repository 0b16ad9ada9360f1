package compose

import (
	"gencompose/internal/diag"
)

// Context binds one collector and one tree for the duration of a single
// run. A context might not hold a tree (e.g. when parsing the source
// failed), so calling the lint and expand functions does not guarantee the
// stages actually run. Contexts are not reusable across runs.
type Context[T any] struct {
	collector *diag.Collector
	input     *T
	outputs   []any
}

// New creates a context over an already-built tree.
func New[T any](c *diag.Collector, input *T) *Context[T] {
	return &Context[T]{collector: c, input: input}
}

// NewEmpty creates a context without a tree. Lints and expands on an
// empty context never invoke the underlying stage.
func NewEmpty[T any](c *diag.Collector) *Context[T] {
	return &Context[T]{collector: c}
}

// NewParse builds the tree from raw source text. If parsing fails, the
// parse diagnostic is reported to the collector immediately and the
// context is left empty: the run is poisoned before any stage executes.
func NewParse[T any](c *diag.Collector, src []byte, parse ParseFunc[T]) *Context[T] {
	input, d := parse(src)
	if d != nil {
		c.Report(*d)
		return &Context[T]{collector: c}
	}
	return &Context[T]{collector: c, input: input}
}

// Collector exposes the bound collector.
func (ctx *Context[T]) Collector() *diag.Collector {
	return ctx.collector
}

// Input returns the held tree, if any.
func (ctx *Context[T]) Input() (*T, bool) {
	return ctx.input, ctx.input != nil
}

// RunLint unconditionally invokes the lint against the held tree. Lints
// always run — they are exactly the mechanism for discovering problems —
// so there is no gate here. The return value reports whether the lint ran
// and recorded nothing.
func (ctx *Context[T]) RunLint(l Lint[T]) bool {
	if ctx.input == nil {
		return false
	}
	before := ctx.collector.Len()
	l.Lint(ctx.input, ctx.collector)
	return before == ctx.collector.Len()
}

// Run invokes the expand stage and stores a produced fragment in call
// order. The gate check happens before every single invocation: once the
// collector is non-clean the stage is skipped entirely — no call, no
// diagnostic. The run is already doomed and expansion work would be
// wasted or unsafe.
func Run[T, O any](ctx *Context[T], e Expand[T, O]) {
	if out, ok := Capture(ctx, e); ok {
		ctx.outputs = append(ctx.outputs, out)
	}
}

// Capture invokes the expand stage under the same gate as Run but hands
// the fragment back to the caller instead of storing it.
func Capture[T, O any](ctx *Context[T], e Expand[T, O]) (O, bool) {
	var zero O
	if !ctx.collector.Clean() {
		return zero, false
	}
	if ctx.input == nil {
		return zero, false
	}
	return e.Expand(ctx.input, ctx.collector)
}

// Outputs returns every stored fragment of type O, in the order the
// corresponding Run calls occurred. Fragments of other output types are
// tracked independently and never merged. An empty result is normal for a
// type whose stages were skipped or contributed nothing.
func Outputs[T, O any](ctx *Context[T]) []O {
	var out []O
	for _, item := range ctx.outputs {
		if v, ok := item.(O); ok {
			out = append(out, v)
		}
	}
	return out
}
