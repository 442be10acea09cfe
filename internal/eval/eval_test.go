package eval

import (
	"testing"

	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/value"
)

func lookupFrom(m map[string]result.Result) LookupFunc {
	return func(ident string) (result.Result, bool) {
		r, ok := m[ident]
		return r, ok
	}
}

func TestParseGrammar(t *testing.T) {
	cases := []struct {
		pred string
		op   Op
		name string
		val  string
	}{
		{"HAVE_STDIO_H", OpTruthy, "HAVE_STDIO_H", ""},
		{"!HAVE_STDIO_H", OpNotTruthy, "HAVE_STDIO_H", ""},
		{"REPLACE_FSTAT==1", OpEq, "REPLACE_FSTAT", "1"},
		{"REPLACE_FSTAT!=1", OpNeq, "REPLACE_FSTAT", "1"},
		{"REPLACE_FSTAT=1", OpEq, "REPLACE_FSTAT", "1"},
	}
	for _, c := range cases {
		p, err := Parse(c.pred)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.pred, err)
		}
		if p.Op != c.op || p.Ident != c.name || p.Value != c.val {
			t.Fatalf("Parse(%q) = %+v, want {%v %v %v}", c.pred, p, c.op, c.name, c.val)
		}
	}
}

func TestEvaluateRequirementMissingIsFalse(t *testing.T) {
	ok, err := EvaluateRequirement([]string{"!HAVE_STDIO_H"}, lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected missing identifier to make requirement false")
	}
}

func TestEvaluateRequirementNegation(t *testing.T) {
	deps := map[string]result.Result{
		"HAVE_STDIO_H": {Success: true, Value: value.FromString("1")},
	}
	ok, err := EvaluateRequirement([]string{"!HAVE_STDIO_H"}, lookupFrom(deps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected requirement to fail when HAVE_STDIO_H is truthy and negated")
	}
}

func TestEvaluateConditionMissingIsFatal(t *testing.T) {
	_, err := EvaluateCondition("ac_cv_func_foo", lookupFrom(nil))
	if err == nil {
		t.Fatalf("expected missing identifier in condition to be a fatal error")
	}
}

func TestValueCompareTypePreservation(t *testing.T) {
	deps := map[string]result.Result{
		"REPLACE_FSTAT": {Success: true, Value: value.FromString("1")},
	}
	// dep's value is the JSON string "1"; literal "1" (quoted) also parses
	// to the JSON string "1" -- canonical forms agree, predicate true.
	ok, err := EvaluateCondition(`REPLACE_FSTAT=="1"`, lookupFrom(deps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected string \"1\" == string literal \"1\" to be true")
	}

	// literal 1 (bareword, parses as JSON integer) differs from the dep's
	// JSON-string value "1": canonical encodings "1" vs "\"1\"" disagree.
	ok, err = EvaluateCondition("REPLACE_FSTAT==1", lookupFrom(deps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected integer literal 1 to differ from string value \"1\"")
	}
}

func TestValueCompareNonJSONLiteralFallsBackToRawString(t *testing.T) {
	deps := map[string]result.Result{
		"ac_cv_host": {Success: true, Value: value.FromString("yes")},
	}
	// "yes" is not valid JSON on its own, so both sides compare as raw
	// strings: the dep's decoded string content must equal the literal text.
	ok, err := EvaluateCondition("ac_cv_host==yes", lookupFrom(deps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected raw-string fallback comparison to match")
	}
}
