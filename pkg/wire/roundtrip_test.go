package wire_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

// sortedEdges returns a canonical ordering for edge-set comparison.
func sortedEdges(g *flow.Graph) []flow.Edge {
	out := make([]flow.Edge, 0, len(g.Edges()))
	for _, e := range g.Edges() {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Match != b.Match {
			return a.Match < b.Match
		}
		if a.ErrorCode != b.ErrorCode {
			return a.ErrorCode < b.ErrorCode
		}
		return a.To < b.To
	})
	return out
}

func buildRoundTripGraph(t *testing.T) *flow.Graph {
	t.Helper()
	g := flow.New("round-trip")
	g.Description = "loop-bearing flow with every edge kind"

	newNode(t, g, "check", "CheckHoursOfOperation")
	newNode(t, g, "menu", "GetParticipantInput")
	newNode(t, g, "agent", "TransferToFlow")
	newNode(t, g, "closed", "MessageParticipant")
	newNode(t, g, "bye", "DisconnectParticipant")

	require.NoError(t, g.AddEdge(&flow.Edge{From: "check", Kind: flow.EdgeCondition, Match: "True", To: "menu"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "check", Kind: flow.EdgeCondition, Match: "False", To: "closed"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "check", Kind: flow.EdgeError, ErrorCode: "NoMatchingError", To: "closed"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "menu", Kind: flow.EdgeCondition, Match: "1", To: "agent"}))
	// Loop back to the menu on timeout.
	require.NoError(t, g.AddEdge(&flow.Edge{From: "menu", Kind: flow.EdgeError, ErrorCode: "InputTimeLimitExceeded", To: "menu"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "menu", Kind: flow.EdgeDefault, To: "bye"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "agent", Kind: flow.EdgeSequential, To: "bye"}))
	require.NoError(t, g.AddEdge(&flow.Edge{From: "closed", Kind: flow.EdgeSequential, To: "bye"}))
	return g
}

func TestRoundTrip_GraphEquivalence(t *testing.T) {
	g := buildRoundTripGraph(t)

	doc, _, err := wire.Compile(g)
	require.NoError(t, err)
	back, err := wire.Decompile(doc)
	require.NoError(t, err)

	assert.Equal(t, g.Name, back.Name)
	assert.Equal(t, g.Description, back.Description)
	assert.Equal(t, g.EntryPoint(), back.EntryPoint())

	require.Equal(t, g.Len(), back.Len())
	for _, n := range g.Nodes() {
		got, ok := back.Node(n.ID)
		require.True(t, ok, n.ID)
		assert.Equal(t, n.Type, got.Type)
		assert.Equal(t, n.Parameters, got.Parameters)
	}

	assert.Equal(t, sortedEdges(g), sortedEdges(back))
}

func TestRoundTrip_LoopEdgeSurvives(t *testing.T) {
	g := buildRoundTripGraph(t)
	doc, _, err := wire.Compile(g)
	require.NoError(t, err)
	back, err := wire.Decompile(doc)
	require.NoError(t, err)

	var loop *flow.Edge
	for _, e := range back.EdgesFrom("menu") {
		if e.Kind == flow.EdgeError && e.ErrorCode == "InputTimeLimitExceeded" {
			loop = e
		}
	}
	require.NotNil(t, loop)
	assert.Equal(t, "menu", loop.To)
}

func TestRoundTrip_RecompileIsStable(t *testing.T) {
	g := buildRoundTripGraph(t)

	doc, _, err := wire.Compile(g)
	require.NoError(t, err)
	first, err := doc.Encode()
	require.NoError(t, err)

	back, err := wire.Decompile(doc)
	require.NoError(t, err)
	doc2, _, err := wire.Compile(back)
	require.NoError(t, err)
	second, err := doc2.Encode()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRoundTrip_JSONDecodeEncode(t *testing.T) {
	g := buildRoundTripGraph(t)
	doc, _, err := wire.Compile(g)
	require.NoError(t, err)
	encoded, err := doc.Encode()
	require.NoError(t, err)

	parsed, err := wire.ParseDocument(encoded)
	require.NoError(t, err)
	reencoded, err := parsed.Encode()
	require.NoError(t, err)

	assert.Equal(t, string(encoded), string(reencoded))
}
