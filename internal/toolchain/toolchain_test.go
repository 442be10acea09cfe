package toolchain

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, body string) string {
	t.Helper()
	path := filepath.Join(dir, "toolchain.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadStripsWerrorFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"c_compiler": "cc", "cpp_compiler": "c++", "linker": "cc",
		"c_flags": ["-Wall", "-Werror", "-Werror=format", "-O2"],
		"cpp_flags": [],
		"c_link_flags": ["/WX", "-lm"],
		"cpp_link_flags": [],
		"compiler_type": "gcc"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := cfg.FilteredCFlags()
	want := []string{"-Wall", "-O2"}
	if len(got) != len(want) {
		t.Fatalf("FilteredCFlags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FilteredCFlags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if linkFlags := cfg.FilteredCLinkFlags(); len(linkFlags) != 1 || linkFlags[0] != "-lm" {
		t.Fatalf("FilteredCLinkFlags() = %v, want [-lm]", linkFlags)
	}
}

func TestIsMSVC(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"c_compiler": "cl", "cpp_compiler": "cl", "linker": "link",
		"c_flags": [], "cpp_flags": [], "c_link_flags": [], "cpp_link_flags": [],
		"compiler_type": "msvc"
	}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsMSVC() {
		t.Fatalf("expected IsMSVC() to be true for compiler_type=msvc")
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"c_compiler": "cc"}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject a toolchain config missing required fields")
	}
}
