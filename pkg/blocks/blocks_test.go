package blocks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	t.Run("message participant", func(t *testing.T) {
		n := MessageParticipant("Welcome")
		assert.Equal(t, TypeMessageParticipant, n.Type)
		assert.Equal(t, "Welcome", n.Parameters["Text"])
	})

	t.Run("get participant input", func(t *testing.T) {
		n := GetParticipantInput("Press 1", 7)
		assert.Equal(t, TypeGetParticipantInput, n.Type)
		// Numeric limits go on the wire as strings.
		assert.Equal(t, "7", n.Parameters["InputTimeLimitSeconds"])
		assert.Equal(t, "False", n.Parameters["StoreInput"])
	})

	t.Run("invoke lambda", func(t *testing.T) {
		n := InvokeLambdaFunction("{{LAMBDA_ARN}}", 8)
		assert.Equal(t, "{{LAMBDA_ARN}}", n.Parameters["LambdaFunctionARN"])
		assert.Equal(t, "8", n.Parameters["InvocationTimeLimitSeconds"])
	})

	t.Run("update contact attributes", func(t *testing.T) {
		n := UpdateContactAttributes(map[string]string{"vip": "true"})
		attrs, ok := n.Parameters["Attributes"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "true", attrs["vip"])
	})

	t.Run("lex bot", func(t *testing.T) {
		n := ConnectParticipantWithLexBot("How can I help?", "arn:lex:alias")
		bot, ok := n.Parameters["LexV2Bot"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "arn:lex:alias", bot["AliasArn"])
	})

	t.Run("parameterless blocks", func(t *testing.T) {
		assert.Equal(t, TypeDisconnectParticipant, DisconnectParticipant().Type)
		assert.Equal(t, TypeEndFlowExecution, EndFlowExecution().Type)
	})
}

func TestConstructors_FreshUUIDs(t *testing.T) {
	a := DisconnectParticipant()
	b := DisconnectParticipant()
	assert.NotEqual(t, a.ID, b.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
}

func TestStrictCatalog(t *testing.T) {
	c := Strict{}

	t.Run("unknown type", func(t *testing.T) {
		assert.Error(t, c.Validate("NotABlock", nil))
	})

	t.Run("missing required parameter", func(t *testing.T) {
		err := c.Validate(TypeTransferToFlow, map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ContactFlowId")
	})

	t.Run("constructor output passes", func(t *testing.T) {
		n := TransferToFlow("{{FLOW_ID}}")
		assert.NoError(t, c.Validate(n.Type, n.Parameters))
	})

	t.Run("type with no required params", func(t *testing.T) {
		assert.NoError(t, c.Validate(TypeDisconnectParticipant, nil))
	})
}

func TestPermissiveCatalog(t *testing.T) {
	assert.NoError(t, Permissive{}.Validate("Anything", nil))
}

func TestKnownTypes(t *testing.T) {
	assert.True(t, Known(TypeMessageParticipant))
	assert.False(t, Known("Bogus"))
	assert.Len(t, Types(), 10)
}
