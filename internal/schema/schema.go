// Package schema validates the three external JSON shapes the engine
// trusts — toolchain config, check record, result record — against an
// embedded CUE contract before any Go struct is unmarshaled from them.
//
// VALIDATOR PHILOSOPHY: CRASH EARLY, CRASH LOUD. A malformed document must
// fail here, with a precise field-level message, rather than surface later
// as a nil pointer or a silently-zero field deep in the dispatcher.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaFS embed.FS

// Definition names inside schema.cue.
const (
	ToolchainConfig = "#ToolchainConfig"
	Check           = "#Check"
	Result          = "#Result"
)

// Validator validates JSON documents against the embedded CUE contract.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema once; the returned Validator is safe for
// concurrent use by multiple goroutines within one process.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// ValidateJSON validates JSON bytes against the named definition in
// schema.cue (one of ToolchainConfig, Check, Result).
func (v *Validator) ValidateJSON(definition string, jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", dataValue.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath(definition))
	if def.Err() != nil {
		return fmt.Errorf("looking up %s definition: %w", definition, def.Err())
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// Validate marshals data to JSON and validates it against the named
// definition.
func (v *Validator) Validate(definition string, data any) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(definition, jsonBytes)
}

// shared default instance; the schema is immutable so one compiled copy can
// serve the whole process.
var defaultValidator *Validator

func init() {
	v, err := New()
	if err != nil {
		panic(fmt.Sprintf("schema: compiling embedded schema: %v", err))
	}
	defaultValidator = v
}

// ValidateToolchainConfig validates raw toolchain config JSON.
func ValidateToolchainConfig(raw []byte) error {
	return defaultValidator.ValidateJSON(ToolchainConfig, raw)
}

// ValidateCheck validates raw check JSON.
func ValidateCheck(raw []byte) error {
	return defaultValidator.ValidateJSON(Check, raw)
}

// ValidateResult validates raw result JSON.
func ValidateResult(raw []byte) error {
	return defaultValidator.ValidateJSON(Result, raw)
}
