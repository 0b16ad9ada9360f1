// Package compose sequences lint and expand stages over a shared source
// tree and aggregates their findings into one diag.Collector.
//
// # Lifecycle
//
// The caller constructs a Collector, obtains a tree (usually via
// NewParse), and creates one Context binding the two. Lints run
// unconditionally and may record diagnostics; expands run only while the
// collector is clean and may each contribute one output fragment. Lint
// and expand calls may be freely interleaved — the clean check is
// performed before every expand invocation, not once per phase. Finally
// Collector.Finish converts the accumulated state into the run outcome.
//
// # Short-circuit contract
//
// Once any diagnostic has been recorded, every subsequent expand call in
// the same run is a silent no-op: the underlying stage is not invoked and
// no fragment is produced. The gate lives here in the orchestrator, not
// in individual stages, so expand implementations can be unconditionally
// correct on the happy path — they never re-check invariants already
// established by lints.
//
// The package is generic over the tree type and the per-stage output
// type; it never interprets either.
package compose
