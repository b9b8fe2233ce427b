package cxflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
	"github.com/NC1107/CxBlueprint/pkg/blocks"
	"github.com/NC1107/CxBlueprint/pkg/cxflow"
	"github.com/NC1107/CxBlueprint/pkg/wire"
)

func TestBuilder_IVRScenario(t *testing.T) {
	b := cxflow.New("ivr", cxflow.WithDescription("sales and support line"))

	welcome := b.PlayPrompt("Welcome.")
	menu := b.GetInput("Press 1 for sales, 2 for support.", 5)
	sales := b.PlayPrompt("Connecting you to sales.")
	support := b.PlayPrompt("Connecting you to support.")
	errorMsg := b.PlayPrompt("Sorry, that is not a valid choice.")
	bye := b.Disconnect()

	welcome.Then(menu)
	menu.When("1", sales).When("2", support).Otherwise(errorMsg)
	sales.Then(bye)
	support.Then(bye)
	errorMsg.Then(bye)

	doc, diags, err := b.Compile()
	require.NoError(t, err)
	assert.Empty(t, diags)

	require.Len(t, doc.Actions, 6)
	assert.Equal(t, welcome.ID(), doc.StartAction)

	actionByID := make(map[string]wire.Action, len(doc.Actions))
	for _, a := range doc.Actions {
		actionByID[a.Identifier] = a
	}

	menuAction := actionByID[menu.ID()]
	assert.Equal(t, []wire.Condition{
		{Match: "1", Target: sales.ID()},
		{Match: "2", Target: support.ID()},
	}, menuAction.Transitions.Conditions)
	assert.Equal(t, errorMsg.ID(), menuAction.Transitions.Default)
	assert.Empty(t, menuAction.Transitions.Success)

	// All three terminal prompts flow into the same disconnect.
	for _, h := range []cxflow.Handle{sales, support, errorMsg} {
		assert.Equal(t, bye.ID(), actionByID[h.ID()].Transitions.Success)
	}
}

func TestBuilder_StickyErrors(t *testing.T) {
	t.Run("duplicate then", func(t *testing.T) {
		b := cxflow.New("dup")
		a := b.PlayPrompt("a")
		c := b.Disconnect()
		a.Then(c).Then(c)
		assert.ErrorIs(t, b.Err(), flow.ErrDuplicateEdgeKind)
		_, _, err := b.Compile()
		assert.ErrorIs(t, err, flow.ErrDuplicateEdgeKind)
	})

	t.Run("duplicate condition value", func(t *testing.T) {
		b := cxflow.New("dup")
		menu := b.GetInput("pick", 5)
		x := b.Disconnect()
		menu.When("1", x).When("1", x)
		assert.ErrorIs(t, b.Err(), flow.ErrDuplicateConditionValue)
	})

	t.Run("duplicate otherwise", func(t *testing.T) {
		b := cxflow.New("dup")
		menu := b.GetInput("pick", 5)
		x := b.Disconnect()
		menu.Otherwise(x).Otherwise(x)
		assert.ErrorIs(t, b.Err(), flow.ErrDuplicateEdgeKind)
	})

	t.Run("duplicate error code", func(t *testing.T) {
		b := cxflow.New("dup")
		menu := b.GetInput("pick", 5)
		x := b.Disconnect()
		menu.OnError(blocks.ErrorNoMatchingError, x).OnError(blocks.ErrorNoMatchingError, x)
		assert.ErrorIs(t, b.Err(), flow.ErrDuplicateErrorCode)
	})

	t.Run("first error wins and later calls are no-ops", func(t *testing.T) {
		b := cxflow.New("dup")
		a := b.PlayPrompt("a")
		c := b.Disconnect()
		a.Then(c).Then(c)
		first := b.Err()
		a.Otherwise(c).Otherwise(c)
		assert.Equal(t, first, b.Err())
		assert.Len(t, b.Graph().Edges(), 1)
	})
}

func TestBuilder_ForwardReferenceAndLoop(t *testing.T) {
	b := cxflow.New("loop")
	menu := b.GetInput("pick", 5)

	// Forward reference by raw id: the target does not exist yet.
	menu.When("1", cxflow.NodeID("later"))
	_, _, err := b.Compile()
	assert.ErrorIs(t, err, wire.ErrUnresolvedReference)

	// Adding the node under that id makes the graph compile.
	b2 := cxflow.New("loop")
	menu2 := b2.GetInput("pick", 5)
	menu2.When("1", cxflow.NodeID("later"))
	later := &flow.Node{ID: "later", Type: blocks.TypeMessageParticipant, Parameters: map[string]any{"Text": "hi"}}
	h := b2.Add(later)
	// Loop back to the menu.
	h.Then(menu2)

	doc, _, err := b2.Compile()
	require.NoError(t, err)
	require.Len(t, doc.Actions, 2)
	assert.Equal(t, menu2.ID(), doc.Actions[1].Transitions.Success)
}

func TestBuilder_CatalogValidation(t *testing.T) {
	b := cxflow.New("strict", cxflow.WithCatalog(blocks.Strict{}))
	b.Add(&flow.Node{ID: "n1", Type: "NotARealBlock"})
	_, _, err := b.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown block type")
}

func TestBuilder_SetParameter(t *testing.T) {
	b := cxflow.New("params")
	prompt := b.PlayPrompt("draft")
	bye := b.Disconnect()
	prompt.Then(bye)

	// Edges bind ids, so parameters can change after connecting.
	prompt.SetParameter("Text", "final")

	doc, _, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, "final", doc.Actions[0].Parameters["Text"])
}

func TestBuilder_SetEntryPoint(t *testing.T) {
	b := cxflow.New("entry")
	first := b.PlayPrompt("first")
	second := b.PlayPrompt("second")
	second.Then(first)
	b.SetEntryPoint(second)

	doc, _, err := b.Compile()
	require.NoError(t, err)
	assert.Equal(t, second.ID(), doc.StartAction)
}
