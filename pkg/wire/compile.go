package wire

import (
	"fmt"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
	"github.com/NC1107/CxBlueprint/internal/core/layout"
)

// Compile serializes a graph to a wire document. It operates on a snapshot,
// so the caller may keep mutating the graph afterwards. The returned
// diagnostics are warnings (currently only orphan nodes); a non-nil error
// means no document was produced.
//
// Compilation is deterministic: the same graph, built in the same order,
// encodes to byte-identical JSON on every run.
func Compile(g *flow.Graph) (*Document, []Diagnostic, error) {
	g = g.Clone()

	entry := g.EntryPoint()
	if entry == "" {
		return nil, nil, ErrMissingEntryNode
	}
	if _, ok := g.Node(entry); !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingEntryNode, entry)
	}
	for _, e := range g.Edges() {
		if _, ok := g.Node(e.To); !ok {
			return nil, nil, fmt.Errorf("%w: edge %s -> %q", ErrUnresolvedReference, e.From, e.To)
		}
	}

	res := layout.Compute(g)

	// Group outgoing edges once rather than scanning per node.
	outgoing := make(map[string][]*flow.Edge, g.Len())
	for _, e := range g.Edges() {
		outgoing[e.From] = append(outgoing[e.From], e)
	}

	version := g.Version
	if version == "" {
		version = SchemaVersion
	}
	doc := &Document{
		Name:        g.Name,
		Description: g.Description,
		Version:     version,
		StartAction: entry,
		Actions:     make([]Action, 0, g.Len()),
		Extra:       g.Extra,
	}

	for _, n := range g.Nodes() {
		pos := res.Positions[n.ID]
		act := Action{
			Identifier: n.ID,
			Type:       n.Type,
			Parameters: n.Parameters,
			Metadata:   ActionMetadata{Position: Position{X: pos.X, Y: pos.Y}},
			Extra:      n.Extra,
		}
		for _, e := range outgoing[n.ID] {
			switch e.Kind {
			case flow.EdgeSequential:
				act.Transitions.Success = e.To
			case flow.EdgeCondition:
				act.Transitions.Conditions = append(act.Transitions.Conditions, Condition{Match: e.Match, Target: e.To})
			case flow.EdgeDefault:
				act.Transitions.Default = e.To
			case flow.EdgeError:
				act.Transitions.Errors = append(act.Transitions.Errors, ErrorTransition{Code: e.ErrorCode, Target: e.To})
			}
		}
		doc.Actions = append(doc.Actions, act)
	}

	var diags []Diagnostic
	for _, id := range res.Orphans {
		diags = append(diags, Diagnostic{
			Code:   DiagOrphanNode,
			NodeID: id,
			Detail: fmt.Sprintf("node %q is unreachable from entry %q", id, entry),
		})
	}
	return doc, diags, nil
}
