// Package diag defines the structured diagnostic channel shared by the
// collection and inhabitation engines.
//
// Every rejection path in the engines emits a record here instead of
// aborting: the solver-backed pipeline is best-effort, and dropping one
// fact merely weakens the evidence handed downstream. Records carry a
// compact numeric Code (stable), a Severity, the subject entity, and a
// human-oriented message (not stable; consumers must not parse it).
//
// Engines depend only on the Reporter interface, so tests can capture
// skip reasons through a Bag and the CLI can render or discard them
// without the core knowing either way.
package diag
