// Package toolchain carries the compiler/linker invocation data supplied by
// the frontend. A Config is an immutable input: the probe runner never
// mutates it after load.
package toolchain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/periareon/cc-autocheck/internal/schema"
)

// Config mirrors the toolchain config JSON the frontend hands the engine.
type Config struct {
	CCompiler     string   `json:"c_compiler"`
	CppCompiler   string   `json:"cpp_compiler"`
	Linker        string   `json:"linker"`
	CFlags        []string `json:"c_flags"`
	CppFlags      []string `json:"cpp_flags"`
	CLinkFlags    []string `json:"c_link_flags"`
	CppLinkFlags  []string `json:"cpp_link_flags"`
	CompilerType  string   `json:"compiler_type"`

	filteredCFlags       []string
	filteredCppFlags     []string
	filteredCLinkFlags   []string
	filteredCppLinkFlags []string
}

// werrorLiterals are exact-match flags stripped from every flag vector
// before it reaches a probe, because probes legitimately trigger warnings.
var werrorLiterals = map[string]bool{
	"-Werror":                               true,
	"/WX":                                   true,
	"-Werror=all":                           true,
	"-Wincompatible-library-redeclaration": true,
}

func stripWerror(flags []string) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if werrorLiterals[f] {
			continue
		}
		if strings.HasPrefix(f, "-Werror=") {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Load reads and schema-validates a toolchain config file, then precomputes
// the warning-as-error-stripped flag vectors used by every probe.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading toolchain config: %w", err)
	}

	if err := schema.ValidateToolchainConfig(data); err != nil {
		return nil, fmt.Errorf("validating toolchain config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing toolchain config: %w", err)
	}

	cfg.filteredCFlags = stripWerror(cfg.CFlags)
	cfg.filteredCppFlags = stripWerror(cfg.CppFlags)
	cfg.filteredCLinkFlags = stripWerror(cfg.CLinkFlags)
	cfg.filteredCppLinkFlags = stripWerror(cfg.CppLinkFlags)

	return &cfg, nil
}

// FilteredCFlags returns the C compile flags with -Werror-class flags
// stripped.
func (c *Config) FilteredCFlags() []string { return c.filteredCFlags }

// FilteredCppFlags returns the C++ compile flags with -Werror-class flags
// stripped.
func (c *Config) FilteredCppFlags() []string { return c.filteredCppFlags }

// FilteredCLinkFlags returns the C link flags with -Werror-class flags
// stripped.
func (c *Config) FilteredCLinkFlags() []string { return c.filteredCLinkFlags }

// FilteredCppLinkFlags returns the C++ link flags with -Werror-class flags
// stripped.
func (c *Config) FilteredCppLinkFlags() []string { return c.filteredCppLinkFlags }

// IsMSVC reports whether CompilerType selects MSVC-family invocation syntax.
func (c *Config) IsMSVC() bool {
	return strings.HasPrefix(strings.ToLower(c.CompilerType), "msvc")
}

// CompilerFor returns the compiler path for the given probe language.
func (c *Config) CompilerFor(language string) string {
	if language == "cpp" {
		return c.CppCompiler
	}
	return c.CCompiler
}

// CompileFlagsFor returns the filtered compile flags for the given probe
// language.
func (c *Config) CompileFlagsFor(language string) []string {
	if language == "cpp" {
		return c.FilteredCppFlags()
	}
	return c.FilteredCFlags()
}

// LinkFlagsFor returns the filtered link flags for the given probe language.
func (c *Config) LinkFlagsFor(language string) []string {
	if language == "cpp" {
		return c.FilteredCppLinkFlags()
	}
	return c.FilteredCLinkFlags()
}
