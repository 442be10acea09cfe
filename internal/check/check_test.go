package check

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCheck(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "check.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing check: %v", err)
	}
	return path
}

func TestLoadFunctionCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeCheck(t, dir, `{
		"type": "Function", "name": "ac_cv_func_printf", "define": "HAVE_PRINTF",
		"code": "extern int printf(); int main(void){return printf();}"
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Kind != KindFunction {
		t.Fatalf("Kind = %v, want Function", c.Kind)
	}
	if c.EffectiveLanguage() != "c" {
		t.Fatalf("EffectiveLanguage() = %q, want c", c.EffectiveLanguage())
	}
}

func TestLoadRejectsMissingCodeForSizeof(t *testing.T) {
	dir := t.TempDir()
	path := writeCheck(t, dir, `{"type": "Sizeof", "name": "ac_cv_sizeof_int"}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject a Sizeof check with no code")
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := writeCheck(t, dir, `{"type": "Bogus", "name": "x"}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject an unknown kind")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for name, kind := range kindByName {
		if kind.String() != name {
			t.Fatalf("Kind(%v).String() = %q, want %q", kind, kind.String(), name)
		}
		parsed, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
		if parsed != kind {
			t.Fatalf("ParseKind(%q) = %v, want %v", name, parsed, kind)
		}
	}
}
