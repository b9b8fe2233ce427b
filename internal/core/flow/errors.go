// Package flow defines domain-specific errors
package flow

import "errors"

// Domain errors, matched by callers with errors.Is.
var (
	// Graph errors
	ErrInvalidFlowName = errors.New("invalid flow name")
	ErrNoEntryPoint    = errors.New("no entry point specified")
	ErrNodeNotFound    = errors.New("node not found")

	// Node errors
	ErrNilNode         = errors.New("node cannot be nil")
	ErrInvalidNodeID   = errors.New("invalid node ID")
	ErrInvalidNodeType = errors.New("invalid node type")
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// Edge errors
	ErrNilEdge                 = errors.New("edge cannot be nil")
	ErrInvalidSource           = errors.New("invalid source node")
	ErrInvalidTarget           = errors.New("invalid target node")
	ErrInvalidEdgeKind         = errors.New("invalid edge kind")
	ErrDuplicateEdgeKind       = errors.New("duplicate edge kind for node")
	ErrDuplicateConditionValue = errors.New("duplicate condition value for node")
	ErrDuplicateErrorCode      = errors.New("duplicate error code for node")
	ErrMissingMatchValue       = errors.New("condition edge missing match value")
	ErrMissingErrorCode        = errors.New("error edge missing error code")
	ErrReservedConditionValue  = errors.New("condition value collides with a reserved transition key")
)
