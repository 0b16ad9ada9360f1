package diag

import (
	"fmt"

	"gencompose/internal/source"
)

// Collector accumulates the diagnostics of one pipeline run.
//
// Diagnostics are kept in the order they were reported and are never
// dropped or reordered. A Collector is bound to exactly one run: created
// empty, handed to every stage, and consumed once by Finish.
type Collector struct {
	diags    []Diagnostic
	finished bool
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends a diagnostic. It never fails; every report permanently
// marks the collector non-clean.
func (c *Collector) Report(d Diagnostic) {
	if c.finished {
		panic("diag: Report called after Finish")
	}
	c.diags = append(c.diags, d)
}

// Error is a shortcut reporting an error-severity diagnostic.
func (c *Collector) Error(code Code, primary source.Span, msg string) {
	c.Report(NewError(code, primary, msg))
}

// Errorf is like Error with a formatted message.
func (c *Collector) Errorf(code Code, primary source.Span, format string, args ...any) {
	c.Report(NewError(code, primary, fmt.Sprintf(format, args...)))
}

// Clean reports whether no diagnostic has ever been recorded.
func (c *Collector) Clean() bool {
	return len(c.diags) == 0
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	return len(c.diags)
}

// Finish consumes the collector and converts its state into the run
// outcome: nil when clean, otherwise an *Error carrying every recorded
// diagnostic in reporting order. The collector is unusable afterwards.
func (c *Collector) Finish() error {
	if c.finished {
		panic("diag: Finish called twice")
	}
	c.finished = true
	if len(c.diags) == 0 {
		return nil
	}
	return &Error{diags: c.diags}
}

// Error is the failure outcome of a run: the full ordered list of
// diagnostics recorded by the collector.
type Error struct {
	diags []Diagnostic
}

// Diagnostics returns the recorded diagnostics in reporting order.
func (e *Error) Diagnostics() []Diagnostic {
	return e.diags
}

func (e *Error) Error() string {
	if len(e.diags) == 1 {
		return fmt.Sprintf("1 diagnostic: %s", e.diags[0].Message)
	}
	return fmt.Sprintf("%d diagnostics: %s (and %d more)", len(e.diags), e.diags[0].Message, len(e.diags)-1)
}
