// Package flow provides the in-memory intermediate representation of a
// contact flow: an ordered collection of typed nodes plus a list of labeled
// transitions between node ids. The package holds no I/O and no execution
// semantics; compiling a graph to the wire format and back lives in pkg/wire.
package flow

import (
	"encoding/json"
	"fmt"
)

// reservedMatchValues are wire-format transition keys that can never serve as
// condition match values: a condition is encoded as its own key in the
// transitions object, alongside these fixed keys.
var reservedMatchValues = map[string]struct{}{
	"Success": {},
	"Default": {},
	"Errors":  {},
}

// Graph is the canonical in-memory flow. Nodes keep insertion order, which
// determines the order of action records in the compiled document and the
// placement of orphan nodes in the layout. A Graph is not safe for concurrent
// mutation; use one per flow.
type Graph struct {
	Name        string
	Description string
	// Version is the wire schema revision; left empty, the compiler fills
	// in its current default.
	Version string
	// Extra preserves top-level wire-document fields the decompiler did
	// not recognize.
	Extra map[string]json.RawMessage

	nodes map[string]*Node
	order []string
	edges []*Edge
	entry string
}

// New creates an empty graph for the named flow.
func New(name string) *Graph {
	return &Graph{
		Name:  name,
		nodes: make(map[string]*Node),
	}
}

// AddNode registers a node. The first node added becomes the entry point
// unless SetEntryPoint overrides it.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if g.nodes == nil {
		g.nodes = make(map[string]*Node)
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	if g.entry == "" {
		g.entry = n.ID
	}
	return nil
}

// AddEdge registers a transition. The source must already exist; the target
// id may be a forward reference, resolved at compile time. Per-node
// uniqueness rules: one sequential edge, one default edge, distinct condition
// match values, distinct error codes.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return ErrNilEdge
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: edge source %q", ErrNodeNotFound, e.From)
	}
	if e.Kind == EdgeCondition {
		if _, reserved := reservedMatchValues[e.Match]; reserved {
			return fmt.Errorf("%w: %q", ErrReservedConditionValue, e.Match)
		}
	}
	for _, prev := range g.edges {
		if prev.From != e.From {
			continue
		}
		switch {
		case e.Kind == EdgeSequential && prev.Kind == EdgeSequential:
			return fmt.Errorf("%w: second sequential edge from %q", ErrDuplicateEdgeKind, e.From)
		case e.Kind == EdgeDefault && prev.Kind == EdgeDefault:
			return fmt.Errorf("%w: second default edge from %q", ErrDuplicateEdgeKind, e.From)
		case e.Kind == EdgeCondition && prev.Kind == EdgeCondition && prev.Match == e.Match:
			return fmt.Errorf("%w: %q from %q", ErrDuplicateConditionValue, e.Match, e.From)
		case e.Kind == EdgeError && prev.Kind == EdgeError && prev.ErrorCode == e.ErrorCode:
			return fmt.Errorf("%w: %q from %q", ErrDuplicateErrorCode, e.ErrorCode, e.From)
		}
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// EdgesFrom returns the edges originating at the given node id, in insertion
// order.
func (g *Graph) EdgesFrom(id string) []*Edge {
	var out []*Edge
	for _, e := range g.edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// EntryPoint returns the designated entry node id, or "" for an empty graph.
func (g *Graph) EntryPoint() string {
	return g.entry
}

// SetEntryPoint designates an existing node as the flow entry.
func (g *Graph) SetEntryPoint(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: entry point %q", ErrNodeNotFound, id)
	}
	g.entry = id
	return nil
}

// Validate checks the structural invariants that cannot be enforced
// incrementally: a non-empty name, a resolvable entry point, and resolvable
// edge targets.
func (g *Graph) Validate() error {
	if g.Name == "" {
		return ErrInvalidFlowName
	}
	if g.entry == "" {
		return ErrNoEntryPoint
	}
	if _, ok := g.nodes[g.entry]; !ok {
		return fmt.Errorf("%w: entry point %q", ErrNodeNotFound, g.entry)
	}
	for _, e := range g.edges {
		if _, ok := g.nodes[e.To]; !ok {
			return fmt.Errorf("%w: edge target %q", ErrNodeNotFound, e.To)
		}
	}
	return nil
}

// Clone returns an independent snapshot of the graph. The compiler operates
// on a clone so later builder mutations cannot affect an in-flight
// compilation.
func (g *Graph) Clone() *Graph {
	c := New(g.Name)
	c.Description = g.Description
	c.Version = g.Version
	c.entry = g.entry
	if g.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(g.Extra))
		for k, v := range g.Extra {
			c.Extra[k] = v
		}
	}
	for _, id := range g.order {
		n := g.nodes[id].Clone()
		c.nodes[n.ID] = n
		c.order = append(c.order, n.ID)
	}
	c.edges = make([]*Edge, len(g.edges))
	for i, e := range g.edges {
		cp := *e
		c.edges[i] = &cp
	}
	return c
}
