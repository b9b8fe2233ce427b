package wire

import (
	"fmt"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
)

// Decompile reconstructs a graph from a wire document, including documents
// produced by other tools. Action ids, types and parameters are preserved
// verbatim; layout metadata is read and discarded (it is cosmetic, and the
// compiler recomputes it). Unrecognized document and action fields ride
// along opaquely so a recompile loses nothing.
func Decompile(doc *Document) (*flow.Graph, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrMalformedDocument)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	g := flow.New(doc.Name)
	g.Description = doc.Description
	g.Version = doc.Version
	g.Extra = doc.Extra

	for i := range doc.Actions {
		a := &doc.Actions[i]
		n := &flow.Node{
			ID:         a.Identifier,
			Type:       a.Type,
			Parameters: a.Parameters,
			Extra:      a.Extra,
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("%w: action %q: %v", ErrMalformedDocument, a.Identifier, err)
		}
	}

	if err := g.SetEntryPoint(doc.StartAction); err != nil {
		return nil, fmt.Errorf("%w: StartAction %q has no matching action", ErrDanglingTransition, doc.StartAction)
	}

	for i := range doc.Actions {
		a := &doc.Actions[i]
		if err := addTransitionEdges(g, a); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// addTransitionEdges synthesizes the four edge kinds from one action's
// transition object. Condition and error entries are processed in wire
// order, so the rebuilt graph carries the document's discovery order and a
// recompile reproduces the same layout.
func addTransitionEdges(g *flow.Graph, a *Action) error {
	addEdge := func(e *flow.Edge) error {
		if _, ok := g.Node(e.To); !ok {
			return fmt.Errorf("%w: action %q -> %q", ErrDanglingTransition, e.From, e.To)
		}
		if err := g.AddEdge(e); err != nil {
			return fmt.Errorf("%w: action %q: %v", ErrMalformedDocument, a.Identifier, err)
		}
		return nil
	}

	t := &a.Transitions
	if t.Success != "" {
		if err := addEdge(&flow.Edge{From: a.Identifier, Kind: flow.EdgeSequential, To: t.Success}); err != nil {
			return err
		}
	}
	for _, c := range t.Conditions {
		e := &flow.Edge{From: a.Identifier, Kind: flow.EdgeCondition, Match: c.Match, To: c.Target}
		if err := addEdge(e); err != nil {
			return err
		}
	}
	if t.Default != "" {
		if err := addEdge(&flow.Edge{From: a.Identifier, Kind: flow.EdgeDefault, To: t.Default}); err != nil {
			return err
		}
	}
	for _, et := range t.Errors {
		e := &flow.Edge{From: a.Identifier, Kind: flow.EdgeError, ErrorCode: et.Code, To: et.Target}
		if err := addEdge(e); err != nil {
			return err
		}
	}
	return nil
}
