// Package wire implements the external call-routing engine's JSON flow
// schema and the two pure transformations over it: compiling a flow graph to
// a Document and decompiling a Document back to a graph.
//
// The schema is a binary-compatibility surface: field names and the
// four-way transition taxonomy (the fixed "Success" and "Default" keys,
// condition-value keys, and the nested "Errors" object keyed by error code)
// must match the engine exactly. The schema is also external and evolving,
// so every struct carries a passthrough bag for fields this package does not
// model; a decompile→recompile cycle re-emits them byte for byte.
//
// Encoding is canonical: fixed field order for known fields, recorded order
// for transition keys, sorted order for passthrough keys. Compiling the same
// graph twice yields byte-identical JSON.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// SchemaVersion is the engine schema revision this package targets.
const SchemaVersion = "2019-10-30"

// Fixed transition keys.
const (
	keySuccess = "Success"
	keyDefault = "Default"
	keyErrors  = "Errors"
)

// validate checks required document fields after decoding.
var validate = validator.New()

// Document is the top-level wire flow document.
type Document struct {
	Name        string
	Description string
	Version     string
	StartAction string   `validate:"required"`
	Actions     []Action `validate:"required,min=1,dive"`
	// Extra preserves unrecognized top-level fields.
	Extra map[string]json.RawMessage
}

// Action is one node-record in the document.
type Action struct {
	Identifier  string `validate:"required"`
	Type        string `validate:"required"`
	Parameters  map[string]any
	Metadata    ActionMetadata
	Transitions Transitions
	// Extra preserves unrecognized action fields.
	Extra map[string]json.RawMessage
}

// ActionMetadata carries the cosmetic canvas placement of an action.
type ActionMetadata struct {
	Position Position `json:"position"`
}

// Position is a canvas coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Transitions is an action's outgoing-transition mapping. All targets are
// action identifiers. Conditions and Errors keep their wire order: the JSON
// key order determines BFS discovery order in the layout, so preserving it
// makes decompile→recompile stable.
type Transitions struct {
	Success    string
	Conditions []Condition
	Default    string
	Errors     []ErrorTransition
}

// Condition is one condition-value transition entry.
type Condition struct {
	Match  string
	Target string
}

// ErrorTransition is one error-code transition entry.
type ErrorTransition struct {
	Code   string
	Target string
}

// Condition returns the target for a match value, or "".
func (t *Transitions) Condition(match string) string {
	for _, c := range t.Conditions {
		if c.Match == match {
			return c.Target
		}
	}
	return ""
}

// Error returns the target for an error code, or "".
func (t *Transitions) Error(code string) string {
	for _, e := range t.Errors {
		if e.Code == code {
			return e.Target
		}
	}
	return ""
}

// writeField appends a JSON object member to buf, handling the comma.
func writeField(buf *bytes.Buffer, first *bool, key string, value any) error {
	if !*first {
		buf.WriteByte(',')
	}
	*first = false
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(v)
	return nil
}

// writeExtras appends passthrough fields in sorted key order.
func writeExtras(buf *bytes.Buffer, first *bool, extra map[string]json.RawMessage) error {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeField(buf, first, k, extra[k]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the document with canonical field order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if err := writeField(&buf, &first, "Name", d.Name); err != nil {
		return nil, err
	}
	if d.Description != "" {
		if err := writeField(&buf, &first, "Description", d.Description); err != nil {
			return nil, err
		}
	}
	if err := writeField(&buf, &first, "Version", d.Version); err != nil {
		return nil, err
	}
	if err := writeField(&buf, &first, "StartAction", d.StartAction); err != nil {
		return nil, err
	}
	if err := writeField(&buf, &first, "Actions", d.Actions); err != nil {
		return nil, err
	}
	if err := writeExtras(&buf, &first, d.Extra); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a document, diverting unknown fields to Extra.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{}
	for key, val := range raw {
		var err error
		switch key {
		case "Name":
			err = json.Unmarshal(val, &d.Name)
		case "Description":
			err = json.Unmarshal(val, &d.Description)
		case "Version":
			err = json.Unmarshal(val, &d.Version)
		case "StartAction":
			err = json.Unmarshal(val, &d.StartAction)
		case "Actions":
			err = json.Unmarshal(val, &d.Actions)
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]json.RawMessage)
			}
			d.Extra[key] = val
		}
		if err != nil {
			// Keep nested sentinels (transition errors) visible to
			// errors.Is; ParseDocument adds the malformed wrapper
			// for anything else.
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON encodes the action with canonical field order.
func (a Action) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if err := writeField(&buf, &first, "Identifier", a.Identifier); err != nil {
		return nil, err
	}
	if err := writeField(&buf, &first, "Type", a.Type); err != nil {
		return nil, err
	}
	params := a.Parameters
	if params == nil {
		params = map[string]any{}
	}
	if err := writeField(&buf, &first, "Parameters", params); err != nil {
		return nil, err
	}
	if err := writeField(&buf, &first, "Metadata", a.Metadata); err != nil {
		return nil, err
	}
	if err := writeField(&buf, &first, "Transitions", a.Transitions); err != nil {
		return nil, err
	}
	if err := writeExtras(&buf, &first, a.Extra); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an action, diverting unknown fields to Extra.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Action{}
	for key, val := range raw {
		var err error
		switch key {
		case "Identifier":
			err = json.Unmarshal(val, &a.Identifier)
		case "Type":
			err = json.Unmarshal(val, &a.Type)
		case "Parameters":
			err = json.Unmarshal(val, &a.Parameters)
		case "Metadata":
			err = json.Unmarshal(val, &a.Metadata)
		case "Transitions":
			err = json.Unmarshal(val, &a.Transitions)
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]json.RawMessage)
			}
			a.Extra[key] = val
		}
		if err != nil {
			return fmt.Errorf("action %q: %w", a.Identifier, err)
		}
	}
	return nil
}

// MarshalJSON encodes the transition object: "Success" first, condition
// keys in their recorded order, then "Default" and the nested "Errors"
// object, also in recorded order.
func (t Transitions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	if t.Success != "" {
		if err := writeField(&buf, &first, keySuccess, t.Success); err != nil {
			return nil, err
		}
	}
	for _, c := range t.Conditions {
		if err := writeField(&buf, &first, c.Match, c.Target); err != nil {
			return nil, err
		}
	}
	if t.Default != "" {
		if err := writeField(&buf, &first, keyDefault, t.Default); err != nil {
			return nil, err
		}
	}
	if len(t.Errors) > 0 {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"Errors":{`)
		for i, e := range t.Errors {
			errFirst := i == 0
			if err := writeField(&buf, &errFirst, e.Code, e.Target); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a transitions object, preserving key order. Keys
// other than "Success", "Default" and "Errors" are condition match values
// and must map directly to a target id string; any other shape cannot be
// assigned an edge kind and is rejected.
func (t *Transitions) UnmarshalJSON(data []byte) error {
	*t = Transitions{}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: non-string key", ErrUnknownTransitionKey)
		}
		switch key {
		case keySuccess:
			if err := dec.Decode(&t.Success); err != nil {
				return fmt.Errorf("%w: %q: target must be a string", ErrUnknownTransitionKey, key)
			}
		case keyDefault:
			if err := dec.Decode(&t.Default); err != nil {
				return fmt.Errorf("%w: %q: target must be a string", ErrUnknownTransitionKey, key)
			}
		case keyErrors:
			if err := t.decodeErrors(dec); err != nil {
				return err
			}
		default:
			var target string
			if err := dec.Decode(&target); err != nil {
				return fmt.Errorf("%w: %q: condition target must be a string", ErrUnknownTransitionKey, key)
			}
			t.Conditions = append(t.Conditions, Condition{Match: key, Target: target})
		}
	}
	_, err := dec.Token() // closing brace
	return err
}

// decodeErrors reads the nested error-transition object in key order.
func (t *Transitions) decodeErrors(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: %q: must map error codes to targets", ErrUnknownTransitionKey, keyErrors)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: non-string error code", ErrUnknownTransitionKey)
		}
		var target string
		if err := dec.Decode(&target); err != nil {
			return fmt.Errorf("%w: error %q: target must be a string", ErrUnknownTransitionKey, code)
		}
		t.Errors = append(t.Errors, ErrorTransition{Code: code, Target: target})
	}
	_, err = dec.Token() // closing brace
	return err
}

// ParseDocument decodes and validates a wire document from raw JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Transition-shape errors already carry their own sentinel.
		if errors.Is(err, ErrUnknownTransitionKey) || errors.Is(err, ErrMalformedDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// Encode renders the document as indented canonical JSON.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
