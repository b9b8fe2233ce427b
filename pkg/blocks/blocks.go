// Package blocks is the catalog of contact-flow block kinds: the type tags
// the call-routing engine understands, constructors that produce IR nodes
// with freshly minted identifiers, and the error codes blocks commonly raise.
//
// The constructors only populate the parameters the common cases need; any
// parameter value may be a deployment-time template placeholder (e.g.
// "{{LAMBDA_ARN}}"), which passes through compilation untouched. Field-level
// validation of parameters per block type belongs to a Catalog
// implementation, not to the IR.
package blocks

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/NC1107/CxBlueprint/internal/core/flow"
)

// Block type tags accepted by the routing engine.
const (
	TypeMessageParticipant           = "MessageParticipant"
	TypeGetParticipantInput          = "GetParticipantInput"
	TypeDisconnectParticipant        = "DisconnectParticipant"
	TypeTransferToFlow               = "TransferToFlow"
	TypeInvokeLambdaFunction         = "InvokeLambdaFunction"
	TypeCheckHoursOfOperation        = "CheckHoursOfOperation"
	TypeUpdateContactAttributes      = "UpdateContactAttributes"
	TypeConnectParticipantWithLexBot = "ConnectParticipantWithLexBot"
	TypeShowView                     = "ShowView"
	TypeEndFlowExecution             = "EndFlowExecution"
)

// Error codes commonly raised by blocks, used with the builder's OnError.
const (
	ErrorNoMatchingCondition    = "NoMatchingCondition"
	ErrorNoMatchingError        = "NoMatchingError"
	ErrorInputTimeLimitExceeded = "InputTimeLimitExceeded"
	ErrorInvalidPhoneNumber     = "InvalidPhoneNumber"
)

func newNode(blockType string, params map[string]any) *flow.Node {
	if params == nil {
		params = map[string]any{}
	}
	return &flow.Node{
		ID:         uuid.NewString(),
		Type:       blockType,
		Parameters: params,
	}
}

// MessageParticipant plays a prompt to the caller.
func MessageParticipant(text string) *flow.Node {
	return newNode(TypeMessageParticipant, map[string]any{"Text": text})
}

// GetParticipantInput gathers caller input (DTMF for voice contacts) after
// playing the prompt text. The engine expects numeric limits as strings.
func GetParticipantInput(text string, timeoutSeconds int) *flow.Node {
	return newNode(TypeGetParticipantInput, map[string]any{
		"Text":                  text,
		"InputTimeLimitSeconds": strconv.Itoa(timeoutSeconds),
		"StoreInput":            "False",
	})
}

// DisconnectParticipant hangs up the contact.
func DisconnectParticipant() *flow.Node {
	return newNode(TypeDisconnectParticipant, nil)
}

// TransferToFlow hands the contact to another flow.
func TransferToFlow(contactFlowID string) *flow.Node {
	return newNode(TypeTransferToFlow, map[string]any{"ContactFlowId": contactFlowID})
}

// InvokeLambdaFunction calls an external function and exposes its result to
// condition edges.
func InvokeLambdaFunction(functionARN string, timeoutSeconds int) *flow.Node {
	return newNode(TypeInvokeLambdaFunction, map[string]any{
		"LambdaFunctionARN":          functionARN,
		"InvocationTimeLimitSeconds": strconv.Itoa(timeoutSeconds),
	})
}

// CheckHoursOfOperation branches on business hours ("True"/"False"
// condition values).
func CheckHoursOfOperation(hoursOfOperationID string) *flow.Node {
	params := map[string]any{}
	if hoursOfOperationID != "" {
		params["HoursOfOperationId"] = hoursOfOperationID
	}
	return newNode(TypeCheckHoursOfOperation, params)
}

// UpdateContactAttributes writes contact attributes.
func UpdateContactAttributes(attributes map[string]string) *flow.Node {
	attrs := make(map[string]any, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return newNode(TypeUpdateContactAttributes, map[string]any{"Attributes": attrs})
}

// ConnectParticipantWithLexBot hands the conversation to a Lex V2 bot.
func ConnectParticipantWithLexBot(text, aliasARN string) *flow.Node {
	params := map[string]any{
		"LexV2Bot": map[string]any{"AliasArn": aliasARN},
	}
	if text != "" {
		params["Text"] = text
	}
	return newNode(TypeConnectParticipantWithLexBot, params)
}

// ShowView renders an agent-workspace view.
func ShowView(viewID string, timeoutSeconds int) *flow.Node {
	return newNode(TypeShowView, map[string]any{
		"ViewResource":               map[string]any{"Id": viewID},
		"InvocationTimeLimitSeconds": strconv.Itoa(timeoutSeconds),
	})
}

// EndFlowExecution ends the current flow without disconnecting the contact.
func EndFlowExecution() *flow.Node {
	return newNode(TypeEndFlowExecution, nil)
}
