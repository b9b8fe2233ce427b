package cxflow

import (
	"fmt"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
	"github.com/NC1107/CxBlueprint/pkg/blocks"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// Re-export core IR types so callers rarely need the internal packages.
type (
	Graph = flow.Graph
	Node  = flow.Node
	Edge  = flow.Edge
)

// Target identifies the destination of a connection verb: either a Handle
// returned by the builder or a raw NodeID.
type Target interface {
	targetID() string
}

// NodeID is a raw node identifier used as a Target for forward references
// and loops back to earlier nodes.
type NodeID string

func (id NodeID) targetID() string { return string(id) }

// Option configures a Builder.
type Option func(*Builder)

// WithDescription sets the flow description emitted in the document.
func WithDescription(desc string) Option {
	return func(b *Builder) { b.graph.Description = desc }
}

// WithCatalog installs a block catalog; Compile validates every node's
// parameters against it.
func WithCatalog(c blocks.Catalog) Option {
	return func(b *Builder) { b.catalog = c }
}

// Builder accumulates a flow graph. The zero value is not usable; call New.
type Builder struct {
	graph   *flow.Graph
	catalog blocks.Catalog
	err     error
}

// New creates a builder for the named flow.
func New(name string, opts ...Option) *Builder {
	b := &Builder{
		graph:   flow.New(name),
		catalog: blocks.Permissive{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first construction error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Graph exposes the underlying graph.
func (b *Builder) Graph() *flow.Graph {
	return b.graph
}

// fail records the first error; later errors are dropped.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Add registers any node satisfying the IR contract and returns its handle.
// This is the escape hatch for block kinds without a convenience method.
func (b *Builder) Add(n *flow.Node) Handle {
	if b.err != nil {
		return Handle{b: b}
	}
	if err := b.graph.AddNode(n); err != nil {
		b.fail(err)
		return Handle{b: b}
	}
	return Handle{b: b, id: n.ID}
}

// SetEntryPoint overrides the default entry point (the first node added).
func (b *Builder) SetEntryPoint(t Target) *Builder {
	if b.err == nil {
		if err := b.graph.SetEntryPoint(t.targetID()); err != nil {
			b.fail(err)
		}
	}
	return b
}

// Convenience constructors, one per common block kind.

// PlayPrompt adds a MessageParticipant block.
func (b *Builder) PlayPrompt(text string) Handle {
	return b.Add(blocks.MessageParticipant(text))
}

// GetInput adds a GetParticipantInput block.
func (b *Builder) GetInput(text string, timeoutSeconds int) Handle {
	return b.Add(blocks.GetParticipantInput(text, timeoutSeconds))
}

// Disconnect adds a DisconnectParticipant block.
func (b *Builder) Disconnect() Handle {
	return b.Add(blocks.DisconnectParticipant())
}

// TransferToFlow adds a TransferToFlow block.
func (b *Builder) TransferToFlow(contactFlowID string) Handle {
	return b.Add(blocks.TransferToFlow(contactFlowID))
}

// InvokeLambda adds an InvokeLambdaFunction block.
func (b *Builder) InvokeLambda(functionARN string, timeoutSeconds int) Handle {
	return b.Add(blocks.InvokeLambdaFunction(functionARN, timeoutSeconds))
}

// CheckHours adds a CheckHoursOfOperation block.
func (b *Builder) CheckHours(hoursOfOperationID string) Handle {
	return b.Add(blocks.CheckHoursOfOperation(hoursOfOperationID))
}

// UpdateAttributes adds an UpdateContactAttributes block.
func (b *Builder) UpdateAttributes(attributes map[string]string) Handle {
	return b.Add(blocks.UpdateContactAttributes(attributes))
}

// LexBot adds a ConnectParticipantWithLexBot block.
func (b *Builder) LexBot(text, aliasARN string) Handle {
	return b.Add(blocks.ConnectParticipantWithLexBot(text, aliasARN))
}

// ShowView adds a ShowView block.
func (b *Builder) ShowView(viewID string, timeoutSeconds int) Handle {
	return b.Add(blocks.ShowView(viewID, timeoutSeconds))
}

// EndFlow adds an EndFlowExecution block.
func (b *Builder) EndFlow() Handle {
	return b.Add(blocks.EndFlowExecution())
}

// Compile validates nodes against the catalog and serializes the graph.
func (b *Builder) Compile() (*wire.Document, []wire.Diagnostic, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	for _, n := range b.graph.Nodes() {
		if err := b.catalog.Validate(n.Type, n.Parameters); err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	return wire.Compile(b.graph)
}

// Handle refers to one node in a builder's graph. The connection verbs
// return a handle so calls chain; When and OnError return the source handle
// (to stack more branches), Then and Otherwise do too.
type Handle struct {
	b  *Builder
	id string
}

// ID returns the node id the handle refers to.
func (h Handle) ID() string { return h.id }

func (h Handle) targetID() string { return h.id }

// SetParameter updates one parameter on the node. Edges bind ids, not node
// values, so this is safe any time before Compile.
func (h Handle) SetParameter(key string, value any) Handle {
	if h.b.err == nil && h.id != "" {
		if n, ok := h.b.graph.Node(h.id); ok {
			n.SetParameter(key, value)
		}
	}
	return h
}

// connect appends an edge from this handle's node.
func (h Handle) connect(e *flow.Edge) Handle {
	if h.b.err != nil || h.id == "" {
		return h
	}
	if err := h.b.graph.AddEdge(e); err != nil {
		h.b.fail(err)
	}
	return h
}

// Then adds the sequential (success) transition.
func (h Handle) Then(t Target) Handle {
	return h.connect(&flow.Edge{From: h.id, Kind: flow.EdgeSequential, To: t.targetID()})
}

// When adds a condition transition taken when the node's result equals
// value.
func (h Handle) When(value string, t Target) Handle {
	return h.connect(&flow.Edge{From: h.id, Kind: flow.EdgeCondition, Match: value, To: t.targetID()})
}

// Otherwise adds the default transition taken when no condition matches.
func (h Handle) Otherwise(t Target) Handle {
	return h.connect(&flow.Edge{From: h.id, Kind: flow.EdgeDefault, To: t.targetID()})
}

// OnError adds an error transition for the given error code.
func (h Handle) OnError(code string, t Target) Handle {
	return h.connect(&flow.Edge{From: h.id, Kind: flow.EdgeError, ErrorCode: code, To: t.targetID()})
}
