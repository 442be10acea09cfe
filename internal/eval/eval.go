// Package eval parses and evaluates the fixed requirement/condition
// grammar against a set of loaded dependency results:
//
//	PRED := IDENT | '!' IDENT | IDENT '==' VALUE | IDENT '!=' VALUE | IDENT '=' VALUE
//
// Conditions represent as a small AST {ident, op, value?} rather than a
// general expression language — this is deliberately not extensible.
package eval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/periareon/cc-autocheck/internal/result"
)

// Op is the comparison operator of a parsed predicate.
type Op int

const (
	OpTruthy Op = iota
	OpNotTruthy
	OpEq
	OpNeq
)

// Predicate is the parsed AST of one grammar line.
type Predicate struct {
	Ident string
	Op    Op
	Value string // raw literal text, only meaningful for OpEq/OpNeq
}

// Parse parses one predicate line against the fixed grammar.
func Parse(pred string) (Predicate, error) {
	pred = strings.TrimSpace(pred)
	if pred == "" {
		return Predicate{}, fmt.Errorf("empty predicate")
	}

	if strings.HasPrefix(pred, "!") {
		ident := strings.TrimSpace(pred[1:])
		if ident == "" {
			return Predicate{}, fmt.Errorf("malformed predicate %q: missing identifier after !", pred)
		}
		return Predicate{Ident: ident, Op: OpNotTruthy}, nil
	}

	if idx := strings.Index(pred, "!="); idx >= 0 {
		return Predicate{Ident: strings.TrimSpace(pred[:idx]), Op: OpNeq, Value: strings.TrimSpace(pred[idx+2:])}, nil
	}
	if idx := strings.Index(pred, "=="); idx >= 0 {
		return Predicate{Ident: strings.TrimSpace(pred[:idx]), Op: OpEq, Value: strings.TrimSpace(pred[idx+2:])}, nil
	}
	// Legacy single '=' is identical to '=='.
	if idx := strings.Index(pred, "="); idx >= 0 {
		return Predicate{Ident: strings.TrimSpace(pred[:idx]), Op: OpEq, Value: strings.TrimSpace(pred[idx+1:])}, nil
	}

	return Predicate{Ident: pred, Op: OpTruthy}, nil
}

// LookupFunc resolves an identifier by trying cache-name, then define-name,
// then subst-name, as the dependency store does.
type LookupFunc func(ident string) (result.Result, bool)

// valueCompare implements spec 4.E's comparison rule: both the stored value
// and the predicate literal are parsed as JSON when possible and compared
// on their canonical encodings, so that 1 and "1" differ but 1 and 1 agree;
// when the literal fails to parse as JSON, both sides fall back to raw
// string comparison.
func valueCompare(r result.Result, literal string) bool {
	var literalGeneric any
	if err := json.Unmarshal([]byte(literal), &literalGeneric); err == nil {
		canonLiteral, err := json.Marshal(literalGeneric)
		if err != nil {
			return false
		}
		depCanon, ok := r.Value.Canonical()
		if !ok {
			return false
		}
		return string(canonLiteral) == depCanon
	}
	return r.Value.AsString() == literal
}

func evaluate(pred Predicate, lookup LookupFunc) (value bool, missing bool) {
	r, ok := lookup(pred.Ident)
	if !ok {
		return false, true
	}
	switch pred.Op {
	case OpTruthy:
		return result.Truthy(r), false
	case OpNotTruthy:
		return !result.Truthy(r), false
	case OpEq:
		return valueCompare(r, pred.Value), false
	case OpNeq:
		return !valueCompare(r, pred.Value), false
	default:
		return false, false
	}
}

// EvaluateRequirement evaluates a gating requirement list. A missing
// identifier makes that predicate (and therefore the whole requirement set)
// false rather than erroring — spec's distinction between requirement and
// condition semantics.
func EvaluateRequirement(preds []string, lookup LookupFunc) (bool, error) {
	for _, raw := range preds {
		p, err := Parse(raw)
		if err != nil {
			return false, fmt.Errorf("parsing requirement %q: %w", raw, err)
		}
		ok, missing := evaluate(p, lookup)
		if missing || !ok {
			return false, nil
		}
	}
	return true, nil
}

// EvaluateCondition evaluates a value-selection condition. A missing
// identifier is a fatal structural error here — the frontend must ensure
// the referenced value exists (spec's resolved Open Question: strict/fatal
// interpretation).
func EvaluateCondition(pred string, lookup LookupFunc) (bool, error) {
	p, err := Parse(pred)
	if err != nil {
		return false, fmt.Errorf("parsing condition %q: %w", pred, err)
	}
	ok, missing := evaluate(p, lookup)
	if missing {
		return false, fmt.Errorf("condition %q references unknown identifier %q", pred, p.Ident)
	}
	return ok, nil
}
