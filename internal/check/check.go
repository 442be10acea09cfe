// Package check implements the typed description of one probe: kind, cache
// name, optional define/subst names, language, source code, expected
// values, requirements, condition, and the unquote rendering flag.
package check

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/periareon/cc-autocheck/internal/schema"
	"github.com/periareon/cc-autocheck/internal/value"
)

// Kind is the closed set of probe kinds. A tagged variant replaces the
// string-type dispatch the frontend uses on the wire.
type Kind int

const (
	KindUnknown Kind = iota
	KindFunction
	KindLib
	KindType
	KindCompile
	KindLink
	KindDefine
	KindM4Variable
	KindSizeof
	KindAlignof
	KindComputeInt
	KindEndian
	KindDecl
	KindMember
)

var kindNames = [...]string{
	KindUnknown:    "",
	KindFunction:   "Function",
	KindLib:        "Lib",
	KindType:       "Type",
	KindCompile:    "Compile",
	KindLink:       "Link",
	KindDefine:     "Define",
	KindM4Variable: "M4Variable",
	KindSizeof:     "Sizeof",
	KindAlignof:    "Alignof",
	KindComputeInt: "ComputeInt",
	KindEndian:     "Endian",
	KindDecl:       "Decl",
	KindMember:     "Member",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if name != "" {
			m[name] = Kind(k)
		}
	}
	return m
}()

// String returns the wire representation of the kind.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return ""
	}
	return kindNames[k]
}

// ParseKind resolves the wire string to a Kind, failing on anything not in
// the closed set.
func ParseKind(s string) (Kind, error) {
	k, ok := kindByName[s]
	if !ok {
		return KindUnknown, fmt.Errorf("unknown check kind %q", s)
	}
	return k, nil
}

// MarshalJSON encodes the kind as its wire string.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k == KindUnknown {
		return nil, fmt.Errorf("cannot marshal unknown check kind")
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the wire string into a Kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding check kind: %w", err)
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// RequiresSource reports whether checks of this kind must carry non-empty
// Code (spec: Sizeof, Alignof, ComputeInt, Endian, Decl, Member, Compile,
// Link).
func (k Kind) RequiresSource() bool {
	switch k {
	case KindSizeof, KindAlignof, KindComputeInt, KindEndian, KindDecl, KindMember, KindCompile, KindLink:
		return true
	default:
		return false
	}
}

// RunsProbe reports whether this kind ever invokes the compiler at all
// (Define and M4Variable never do — they compute a value purely from the
// condition).
func (k Kind) RunsProbe() bool {
	return k != KindDefine && k != KindM4Variable
}

// MustRun reports whether the probe must be run (not just compiled/linked)
// to produce its value.
func (k Kind) MustRun() bool {
	switch k {
	case KindSizeof, KindAlignof, KindComputeInt, KindEndian:
		return true
	default:
		return false
	}
}

// MustLink reports whether the probe must be linked (not just compiled).
func (k Kind) MustLink() bool {
	switch k {
	case KindFunction, KindLib, KindLink:
		return true
	default:
		return k.MustRun()
	}
}

// Check is the frontend-supplied description of one probe.
type Check struct {
	Kind              Kind         `json:"type"`
	Name              string       `json:"name"`
	Define            string       `json:"define,omitempty"`
	Subst             string       `json:"subst,omitempty"`
	Language          string       `json:"language,omitempty"`
	Code              string       `json:"code,omitempty"`
	DefineValue       value.Value  `json:"define_value,omitempty"`
	DefineValueFail   value.Value  `json:"define_value_fail,omitempty"`
	Library           string       `json:"library,omitempty"`
	Requires          []string     `json:"requires,omitempty"`
	Condition         string       `json:"condition,omitempty"`
	CompileDefines    []string     `json:"compile_defines,omitempty"`
	Unquote           bool         `json:"unquote,omitempty"`
}

// effectiveLanguage returns the probe source language, defaulting to "c".
func (c *Check) effectiveLanguage() string {
	if c.Language == "" {
		return "c"
	}
	return c.Language
}

// EffectiveLanguage is the public accessor for the defaulted language.
func (c *Check) EffectiveLanguage() string { return c.effectiveLanguage() }

// Load reads, schema-validates, and parses a check record, then enforces
// the per-kind mandatory-field rules as a structural error.
func Load(path string) (*Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading check %s: %w", path, err)
	}

	if err := schema.ValidateCheck(data); err != nil {
		return nil, fmt.Errorf("validating check %s: %w", path, err)
	}

	var c Check
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing check %s: %w", path, err)
	}

	if c.Name == "" {
		return nil, fmt.Errorf("check %s: missing required field name", path)
	}

	if c.Kind.RequiresSource() && c.Code == "" {
		return nil, fmt.Errorf("check %s: kind %s requires non-empty code", path, c.Kind)
	}

	return &c, nil
}
