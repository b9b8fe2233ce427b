package blocks

import (
	"fmt"
	"sort"
)

// Catalog validates node parameters for a block type. The IR treats
// parameters as an open bag; implementations of Catalog supply the
// type-specific rules. The zero-value Permissive catalog accepts anything.
type Catalog interface {
	Validate(blockType string, parameters map[string]any) error
}

// Permissive is a Catalog that accepts every type and parameter set.
type Permissive struct{}

// Validate always succeeds.
func (Permissive) Validate(string, map[string]any) error { return nil }

// requiredParams lists the parameter keys the engine rejects a block
// without. This is deliberately minimal; full per-field rules live with the
// engine's own validation.
var requiredParams = map[string][]string{
	TypeGetParticipantInput:     {"InputTimeLimitSeconds", "StoreInput"},
	TypeTransferToFlow:          {"ContactFlowId"},
	TypeInvokeLambdaFunction:    {"LambdaFunctionARN"},
	TypeUpdateContactAttributes: {"Attributes"},
}

// Strict is a Catalog that rejects unknown block types and missing required
// parameters.
type Strict struct{}

// Validate checks the type tag is known and its required parameters are set.
func (Strict) Validate(blockType string, parameters map[string]any) error {
	if !Known(blockType) {
		return fmt.Errorf("unknown block type %q", blockType)
	}
	for _, key := range requiredParams[blockType] {
		if _, ok := parameters[key]; !ok {
			return fmt.Errorf("block type %q: missing required parameter %q", blockType, key)
		}
	}
	return nil
}

var knownTypes = map[string]struct{}{
	TypeMessageParticipant:           {},
	TypeGetParticipantInput:          {},
	TypeDisconnectParticipant:        {},
	TypeTransferToFlow:               {},
	TypeInvokeLambdaFunction:         {},
	TypeCheckHoursOfOperation:        {},
	TypeUpdateContactAttributes:      {},
	TypeConnectParticipantWithLexBot: {},
	TypeShowView:                     {},
	TypeEndFlowExecution:             {},
}

// Known reports whether the type tag belongs to the catalog.
func Known(blockType string) bool {
	_, ok := knownTypes[blockType]
	return ok
}

// Types returns all catalog type tags, sorted.
func Types() []string {
	out := make([]string, 0, len(knownTypes))
	for t := range knownTypes {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
