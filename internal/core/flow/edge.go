// Package flow provides edge definitions
package flow

// EdgeKind represents the kind of transition an edge carries.
type EdgeKind string

const (
	// EdgeSequential is the unconditional success transition. At most one
	// per source node.
	EdgeSequential EdgeKind = "sequential"
	// EdgeCondition is taken when the node's result matches Match. Any
	// number per source node, distinct match values.
	EdgeCondition EdgeKind = "condition"
	// EdgeDefault is taken when no condition matches. At most one per
	// source node.
	EdgeDefault EdgeKind = "default"
	// EdgeError is taken when the node fails with ErrorCode. Any number
	// per source node, distinct codes.
	EdgeError EdgeKind = "error"
)

// Edge is a directed transition between two node ids. Targets are ids rather
// than node pointers so an edge may be added before its target node exists
// (forward references and loops); unresolved targets are rejected at compile
// time, not insertion time.
type Edge struct {
	From      string
	Kind      EdgeKind
	Match     string // condition match value, EdgeCondition only
	ErrorCode string // error code, EdgeError only
	To        string
}

// Validate ensures edge integrity.
func (e *Edge) Validate() error {
	if e.From == "" {
		return ErrInvalidSource
	}
	if e.To == "" {
		return ErrInvalidTarget
	}
	switch e.Kind {
	case EdgeSequential, EdgeDefault:
	case EdgeCondition:
		if e.Match == "" {
			return ErrMissingMatchValue
		}
	case EdgeError:
		if e.ErrorCode == "" {
			return ErrMissingErrorCode
		}
	default:
		return ErrInvalidEdgeKind
	}
	return nil
}
