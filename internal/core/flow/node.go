// Package flow provides node definitions
package flow

import "encoding/json"

// Node represents one action in a contact flow. Type names the block kind
// (e.g. "MessageParticipant"); which parameter keys are meaningful for a
// given type is the block catalog's concern, not the IR's. Parameters is an
// open bag and its values pass through compilation verbatim, including
// deployment-time template placeholders.
//
// Extra carries wire-document fields this system does not model. It is
// populated by the decompiler and re-emitted by the compiler so a
// decompile→recompile cycle is lossless even as the external schema grows.
type Node struct {
	ID         string
	Type       string
	Parameters map[string]any
	Extra      map[string]json.RawMessage
}

// Validate ensures node integrity.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Type == "" {
		return ErrInvalidNodeType
	}
	return nil
}

// SetParameter sets a single parameter value, allocating the bag if needed.
// Edges reference nodes by id, so parameters may be updated freely until the
// graph is compiled.
func (n *Node) SetParameter(key string, value any) {
	if n.Parameters == nil {
		n.Parameters = make(map[string]any)
	}
	n.Parameters[key] = value
}

// Clone returns a deep-enough copy: the parameter and extra maps are copied,
// values are shared (they are treated as immutable by the core).
func (n *Node) Clone() *Node {
	c := &Node{ID: n.ID, Type: n.Type}
	if n.Parameters != nil {
		c.Parameters = make(map[string]any, len(n.Parameters))
		for k, v := range n.Parameters {
			c.Parameters[k] = v
		}
	}
	if n.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(n.Extra))
		for k, v := range n.Extra {
			c.Extra[k] = v
		}
	}
	return c
}
