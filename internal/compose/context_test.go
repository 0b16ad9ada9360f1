package compose

import (
	"errors"
	"testing"

	"gencompose/internal/diag"
	"gencompose/internal/source"
)

// countingLint records how often it ran and optionally reports.
type countingLint struct {
	calls  *int
	report bool
}

func (l countingLint) Lint(_ *string, c *diag.Collector) {
	*l.calls++
	if l.report {
		c.Error(diag.UnknownCode, source.Span{}, "lint finding")
	}
}

// countingExpand records how often it ran and returns a fixed fragment.
type countingExpand struct {
	calls *int
	out   string
	skip  bool // return no fragment
}

func (e countingExpand) Expand(_ *string, _ *diag.Collector) (string, bool) {
	*e.calls++
	if e.skip {
		return "", false
	}
	return e.out, true
}

func newStringContext(c *diag.Collector) *Context[string] {
	input := "tree"
	return New(c, &input)
}

func TestRunLintAlwaysRuns(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	calls := 0
	if ok := ctx.RunLint(countingLint{calls: &calls, report: true}); ok {
		t.Error("RunLint must report false when the lint recorded a diagnostic")
	}
	// lints are not gated: they still run on a dirty collector
	if ok := ctx.RunLint(countingLint{calls: &calls}); !ok {
		t.Error("RunLint must report true when the lint recorded nothing")
	}
	if calls != 2 {
		t.Errorf("lint ran %d times, want 2", calls)
	}
}

func TestExpandGateSkipsAfterDiagnostic(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	lintCalls, expandCalls := 0, 0
	ctx.RunLint(countingLint{calls: &lintCalls, report: true})
	ctx.RunLint(countingLint{calls: &lintCalls, report: true})

	Run(ctx, countingExpand{calls: &expandCalls, out: "a"})
	Run(ctx, countingExpand{calls: &expandCalls, out: "b"})

	if expandCalls != 0 {
		t.Errorf("expanders ran %d times after diagnostics, want 0", expandCalls)
	}
	if got := Outputs[string, string](ctx); len(got) != 0 {
		t.Errorf("Outputs = %v, want empty", got)
	}

	err := c.Finish()
	var derr *diag.Error
	if !errors.As(err, &derr) {
		t.Fatalf("Finish returned %T, want *diag.Error", err)
	}
	if len(derr.Diagnostics()) != 2 {
		t.Errorf("outcome has %d diagnostics, want exactly 2", len(derr.Diagnostics()))
	}
}

func TestExpandGateIsCheckedPerCall(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	lintCalls, before, after := 0, 0, 0

	// interleaved: expand, then a failing lint, then expand again
	Run(ctx, countingExpand{calls: &before, out: "early"})
	ctx.RunLint(countingLint{calls: &lintCalls, report: true})
	Run(ctx, countingExpand{calls: &after, out: "late"})

	if before != 1 {
		t.Errorf("pre-diagnostic expander ran %d times, want 1", before)
	}
	if after != 0 {
		t.Errorf("post-diagnostic expander ran %d times, want 0", after)
	}
	if got := Outputs[string, string](ctx); len(got) != 1 || got[0] != "early" {
		t.Errorf("Outputs = %v, want [early]", got)
	}
}

func TestExpandNoFragmentIsNotAnError(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	calls := 0
	Run(ctx, countingExpand{calls: &calls, skip: true})

	if calls != 1 {
		t.Errorf("expander ran %d times, want 1", calls)
	}
	if !c.Clean() {
		t.Error("an empty expansion must not mark the collector dirty")
	}
	if got := Outputs[string, string](ctx); len(got) != 0 {
		t.Errorf("Outputs = %v, want empty", got)
	}
}

func TestOutputsPreserveCallOrder(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	calls := 0
	for _, out := range []string{"first", "second", "third"} {
		Run(ctx, countingExpand{calls: &calls, out: out})
	}

	got := Outputs[string, string](ctx)
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("Outputs has %d fragments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d = %q, want %q", i, got[i], want[i])
		}
	}
}

type intExpand struct{ out int }

func (e intExpand) Expand(_ *string, _ *diag.Collector) (int, bool) {
	return e.out, true
}

func TestOutputsTrackTypesIndependently(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	calls := 0
	Run(ctx, countingExpand{calls: &calls, out: "text"})
	Run(ctx, intExpand{out: 42})
	Run(ctx, countingExpand{calls: &calls, out: "more"})

	if got := Outputs[string, string](ctx); len(got) != 2 || got[0] != "text" || got[1] != "more" {
		t.Errorf("string outputs = %v, want [text more]", got)
	}
	if got := Outputs[string, int](ctx); len(got) != 1 || got[0] != 42 {
		t.Errorf("int outputs = %v, want [42]", got)
	}
}

func TestCaptureReturnsWithoutStoring(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	calls := 0
	out, ok := Capture(ctx, countingExpand{calls: &calls, out: "captured"})
	if !ok || out != "captured" {
		t.Errorf("Capture = (%q, %v), want (captured, true)", out, ok)
	}
	if got := Outputs[string, string](ctx); len(got) != 0 {
		t.Errorf("Capture must not store fragments, got %v", got)
	}
}

func TestNewParseFailurePoisonsRun(t *testing.T) {
	c := diag.NewCollector()
	failing := func([]byte) (*string, *diag.Diagnostic) {
		d := diag.NewError(diag.ParseFailed, source.Span{}, "bad syntax")
		return nil, &d
	}
	ctx := NewParse(c, []byte("raw"), failing)

	if c.Len() != 1 {
		t.Fatalf("parse failure recorded %d diagnostics, want exactly 1", c.Len())
	}
	if _, ok := ctx.Input(); ok {
		t.Error("failed parse must leave the context without data")
	}

	// later stage calls must not change the diagnostic count
	lintCalls, expandCalls := 0, 0
	ctx.RunLint(countingLint{calls: &lintCalls, report: true})
	Run(ctx, countingExpand{calls: &expandCalls, out: "x"})

	if lintCalls != 0 || expandCalls != 0 {
		t.Errorf("stages ran on empty context: lint=%d expand=%d, want 0/0", lintCalls, expandCalls)
	}
	if c.Len() != 1 {
		t.Errorf("diagnostic count changed to %d, want 1", c.Len())
	}
}

func TestNewParseSuccess(t *testing.T) {
	c := diag.NewCollector()
	parse := func(src []byte) (*string, *diag.Diagnostic) {
		s := string(src)
		return &s, nil
	}
	ctx := NewParse(c, []byte("tree"), parse)

	input, ok := ctx.Input()
	if !ok || *input != "tree" {
		t.Fatalf("Input = (%v, %v), want (tree, true)", input, ok)
	}
	if !c.Clean() {
		t.Error("successful parse must leave the collector clean")
	}
}

func TestEmptyContextNeverInvokesStages(t *testing.T) {
	c := diag.NewCollector()
	ctx := NewEmpty[string](c)

	lintCalls, expandCalls := 0, 0
	if ctx.RunLint(countingLint{calls: &lintCalls}) {
		t.Error("RunLint on empty context must report false")
	}
	Run(ctx, countingExpand{calls: &expandCalls, out: "x"})

	if lintCalls != 0 || expandCalls != 0 {
		t.Errorf("stages ran on empty context: lint=%d expand=%d", lintCalls, expandCalls)
	}
	if !c.Clean() {
		t.Error("empty context must not record diagnostics on its own")
	}
}

func TestEchoReturnsInput(t *testing.T) {
	c := diag.NewCollector()
	ctx := newStringContext(c)

	out, ok := Capture[string, *string](ctx, Echo[string]{})
	if !ok || *out != "tree" {
		t.Errorf("Echo = (%v, %v), want (tree, true)", out, ok)
	}
}
