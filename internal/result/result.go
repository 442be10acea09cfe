// Package result implements the typed outcome of one probe: cache name,
// optional define/subst names, success flag, optional value, unquote flag,
// and originating kind.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/periareon/cc-autocheck/internal/value"
)

// Result is the typed outcome of one probe invocation.
type Result struct {
	Name    string      `json:"-"`
	Define  string      `json:"define,omitempty"`
	Subst   string      `json:"subst,omitempty"`
	Success bool        `json:"success"`
	Value   value.Value `json:"value"`
	Kind    string      `json:"kind,omitempty"`
	Unquote bool        `json:"unquote,omitempty"`
}

// wireEntry is the on-the-wire shape of one Result, keyed by cache name in
// its containing object. hasValue carries the legacy compatibility signal.
type wireEntry struct {
	Define   string          `json:"define,omitempty"`
	Subst    string          `json:"subst,omitempty"`
	Success  bool            `json:"success"`
	Value    json.RawMessage `json:"value,omitempty"`
	Kind     string          `json:"kind,omitempty"`
	Unquote  bool            `json:"unquote,omitempty"`
	HasValue *bool           `json:"has_value,omitempty"`
}

// Skipped returns the canonical Result for a check whose requirements were
// not met: success=false, value absent.
func Skipped(name, define, subst, kind string, unquote bool) Result {
	return Result{
		Name:    name,
		Define:  define,
		Subst:   subst,
		Success: false,
		Value:   value.Absent(),
		Kind:    kind,
		Unquote: unquote,
	}
}

// DecodeMap parses a Result-file JSON object `{name: entry}` into a map
// keyed by cache name, applying the legacy has_value fixup: if the wire
// "value" key is entirely absent (an older writer's `omitempty` on a Go
// string field silently drops both absent and explicitly-empty values
// alike) and has_value is true, the decoded value is treated as
// present-and-empty rather than absent.
func DecodeMap(data []byte) (map[string]Result, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing result object: %w", err)
	}

	out := make(map[string]Result, len(raw))
	for name, entryRaw := range raw {
		var wire wireEntry
		if err := json.Unmarshal(entryRaw, &wire); err != nil {
			return nil, fmt.Errorf("parsing result entry %q: %w", name, err)
		}

		var v value.Value
		if len(wire.Value) > 0 {
			if err := json.Unmarshal(wire.Value, &v); err != nil {
				return nil, fmt.Errorf("parsing result value for %q: %w", name, err)
			}
		} else if wire.HasValue != nil && *wire.HasValue {
			v = value.FromString("")
		}

		out[name] = Result{
			Name:    name,
			Define:  wire.Define,
			Subst:   wire.Subst,
			Success: wire.Success,
			Value:   v,
			Kind:    wire.Kind,
			Unquote: wire.Unquote,
		}
	}
	return out, nil
}

// MarshalOne encodes a single named Result as the `{name: entry}` wire
// object, the shape the Result Serializer writes to a per-check file.
func MarshalOne(r Result) ([]byte, error) {
	raw, err := json.Marshal(r.Value)
	if err != nil {
		return nil, fmt.Errorf("encoding result value: %w", err)
	}
	wrapped := map[string]wireEntry{
		r.Name: {
			Define:  r.Define,
			Subst:   r.Subst,
			Success: r.Success,
			Value:   raw,
			Kind:    r.Kind,
			Unquote: r.Unquote,
		},
	}
	out, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result object: %w", err)
	}
	return out, nil
}

// Equal compares every field of two Results, including canonical Value
// bytes, for the dependency-merge and template-merge agreement rules.
func Equal(a, b Result) bool {
	return a.Name == b.Name &&
		a.Define == b.Define &&
		a.Subst == b.Subst &&
		a.Success == b.Success &&
		a.Kind == b.Kind &&
		a.Unquote == b.Unquote &&
		value.Equal(a.Value, b.Value)
}

// Merge inserts src into dst under key, rejecting a collision where an
// existing entry disagrees with the incoming one (spec invariant: duplicate
// keys across result files must either refer to the same underlying result
// or be rejected). Agreeing duplicates are a no-op.
func Merge(dst map[string]Result, key string, incoming Result) error {
	if existing, ok := dst[key]; ok {
		if !Equal(existing, incoming) {
			return fmt.Errorf("conflicting result for %q: %+v vs %+v", key, existing, incoming)
		}
		return nil
	}
	dst[key] = incoming
	return nil
}

// Truthy implements the truthiness rule used by the requirement/condition
// evaluator: success=true AND value present, non-empty, and not the string
// "0".
func Truthy(r Result) bool {
	if !r.Success || !r.Value.Present() {
		return false
	}
	if r.Value.EmptyString() {
		return false
	}
	return r.Value.AsString() != "0"
}
