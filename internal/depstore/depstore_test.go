package depstore

import (
	"path/filepath"
	"testing"

	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/resultio"
	"github.com/periareon/cc-autocheck/internal/value"
)

func writeResult(t *testing.T, dir, file string, r result.Result) string {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := resultio.Write(path, r); err != nil {
		t.Fatalf("writing result %s: %v", file, err)
	}
	return path
}

func TestLoadIndexesByThreeKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeResult(t, dir, "foo.json", result.Result{
		Name: "ac_cv_func_foo", Define: "HAVE_FOO", Subst: "FOO_SUBST",
		Success: true, Value: value.FromString("1"),
	})

	store, err := Load([]Ref{{Name: "ac_cv_func_foo", Path: path}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, key := range []string{"ac_cv_func_foo", "HAVE_FOO", "FOO_SUBST"} {
		if _, ok := store.Lookup(key); !ok {
			t.Fatalf("expected lookup by %q to succeed", key)
		}
	}
	if _, ok := store.Lookup("nonexistent"); ok {
		t.Fatalf("expected lookup by unknown identifier to fail")
	}
}

func TestLoadRejectsConflictingDuplicates(t *testing.T) {
	dir := t.TempDir()
	pathA := writeResult(t, dir, "a.json", result.Result{
		Name: "ac_cv_a", Define: "HAVE_X", Success: true, Value: value.FromString("1"),
	})
	pathB := writeResult(t, dir, "b.json", result.Result{
		Name: "ac_cv_b", Define: "HAVE_X", Success: true, Value: value.FromString("2"),
	})

	_, err := Load([]Ref{
		{Name: "ac_cv_a", Path: pathA},
		{Name: "ac_cv_b", Path: pathB},
	})
	if err == nil {
		t.Fatalf("expected Load to reject disagreeing duplicate define name HAVE_X")
	}
}
