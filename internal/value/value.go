// Package value implements the three-state, JSON-type-preserving value used
// throughout the check engine: absent, explicitly empty, and present with
// content. A naive string-typed shortcut would collapse null, "" and "null"
// into one state; Value keeps them distinct by storing the original JSON
// token verbatim.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value wraps a JSON token while remembering whether it was present at all.
// The zero Value is absent.
type Value struct {
	present bool
	raw     json.RawMessage
}

// Absent returns the "no value was provided" state.
func Absent() Value {
	return Value{}
}

// FromRaw wraps an already-encoded JSON token as a present value.
func FromRaw(raw json.RawMessage) Value {
	return Value{present: true, raw: append(json.RawMessage(nil), raw...)}
}

// FromString wraps a Go string as a present, JSON-string-typed value.
func FromString(s string) Value {
	raw, err := json.Marshal(s)
	if err != nil {
		// json.Marshal on a string never fails.
		panic(fmt.Sprintf("value: marshal string: %v", err))
	}
	return Value{present: true, raw: raw}
}

// Present reports whether a value was provided at all (as opposed to null).
func (v Value) Present() bool {
	return v.present
}

// Raw returns the underlying JSON token. Callers must not retain a mutable
// alias: Raw returns the Value's own backing slice.
func (v Value) Raw() json.RawMessage {
	return v.raw
}

// EmptyString reports whether the value is present and JSON-decodes to the
// empty Go string "". Non-string present values are never "empty" in this
// sense.
func (v Value) EmptyString() bool {
	if !v.present {
		return false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return false
	}
	return s == ""
}

// AsString decodes the value as its rendered content, without surrounding
// JSON string quotes, for substitution into templates. Non-string JSON
// tokens (numbers, booleans) render as their literal JSON text.
func (v Value) AsString() string {
	if !v.present {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(v.raw))
}

// MarshalJSON encodes null for an absent value and the stored token for a
// present one.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if len(v.raw) == 0 {
		return []byte(`""`), nil
	}
	return v.raw, nil
}

// UnmarshalJSON decodes null into the absent state and any other token
// (including "") into a present state that preserves the original type.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*v = Value{}
		return nil
	}
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	*v = Value{present: true, raw: append(json.RawMessage(nil), probe...)}
	return nil
}

// Canonical returns the canonical JSON encoding used for predicate value
// comparison, re-marshaling through encoding/json so that whitespace and key
// order differences wash out. ok is false when the value is absent.
func (v Value) Canonical() (canon string, ok bool) {
	if !v.present {
		return "", false
	}
	var generic any
	if err := json.Unmarshal(v.raw, &generic); err != nil {
		return "", false
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// Equal reports whether two values are identical in presence and canonical
// JSON encoding.
func Equal(a, b Value) bool {
	if a.present != b.present {
		return false
	}
	if !a.present {
		return true
	}
	ca, okA := a.Canonical()
	cb, okB := b.Canonical()
	if okA && okB {
		return ca == cb
	}
	return bytes.Equal(bytes.TrimSpace(a.raw), bytes.TrimSpace(b.raw))
}
