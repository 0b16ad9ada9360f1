// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by parse / lint / expand stages.
//   - Offer the run-scoped Collector that lets stages record findings
//     without coupling to storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # The Collector
//
// Collector is the single accumulator of one run. Its contract is strict:
// diagnostics are appended in reporting order and are never dropped,
// deduplicated, or reordered; Clean flips to false on the first report and
// stays false for the rest of the run; Finish consumes the collector
// exactly once, yielding nil on a clean run or an *Error carrying the
// complete ordered list otherwise.
//
// Rendering responsibilities live in internal/diagfmt; orchestration and
// the expansion short-circuit live in internal/compose.
package diag
