// Package wire defines serialization errors
package wire

import "errors"

// Serialization errors, matched by callers with errors.Is.
var (
	// Compile-time errors
	ErrUnresolvedReference = errors.New("edge references a node absent from the graph")
	ErrMissingEntryNode    = errors.New("entry node absent from the graph")

	// Decompile-time errors
	ErrMalformedDocument    = errors.New("malformed wire document")
	ErrUnknownTransitionKey = errors.New("unknown transition key")
	ErrDanglingTransition   = errors.New("transition targets a missing action")
)

// Diagnostic is a warning-level finding attached to an otherwise successful
// compile. Diagnostics never abort compilation.
type Diagnostic struct {
	Code   string
	NodeID string
	Detail string
}

// Diagnostic codes.
const (
	// DiagOrphanNode marks a node unreachable from the entry point. The
	// target engine tolerates orphans, so this is a warning, but it almost
	// always indicates an authoring mistake.
	DiagOrphanNode = "orphan-node"
)
