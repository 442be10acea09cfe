package probe

import (
	"fmt"
	"strings"

	"github.com/periareon/cc-autocheck/internal/toolchain"
)

// compileArgs builds the compiler invocation for one source file, branching
// on compiler_type per spec 4.F's table: MSVC uses /c and /Fo<path>; every
// other family uses -c ... -o <path>.
func compileArgs(cfg *toolchain.Config, language, sourcePath, objPath string) (compiler string, args []string) {
	compiler = cfg.CompilerFor(language)
	flags := cfg.CompileFlagsFor(language)

	if cfg.IsMSVC() {
		args = append(append([]string{"/c"}, flags...), sourcePath, "/Fo"+objPath)
		return compiler, args
	}

	args = append(append([]string{"-c"}, flags...), sourcePath, "-o", objPath)
	return compiler, args
}

// linkArgs builds a separate link invocation over already-compiled object
// files, using the configured linker (falling back to the compiler when no
// linker is configured, matching spec's "or compiler fallback").
func linkArgs(cfg *toolchain.Config, language string, objPaths []string, outPath, library string) (linker string, args []string) {
	linker = cfg.Linker
	if linker == "" {
		linker = cfg.CompilerFor(language)
	}
	linkFlags := cfg.LinkFlagsFor(language)

	if cfg.IsMSVC() {
		args = append(append([]string{}, objPaths...), "/OUT:"+outPath)
		args = append(args, linkFlags...)
		if library != "" {
			args = append(args, library+".lib")
		}
		return linker, args
	}

	args = append(append([]string{}, objPaths...), "-o", outPath)
	args = append(args, linkFlags...)
	if library != "" {
		args = append(args, "-l"+library)
	}
	return linker, args
}

// FunctionProbeSource composes the extern-decl-plus-main probe body for
// Function/Lib kinds, per spec 4.G's table: the MSVC variant includes the
// legacy_stdio_definitions pragma and uses an int return; others use char.
func FunctionProbeSource(cfg *toolchain.Config, fn string) string {
	var b strings.Builder
	if cfg.IsMSVC() {
		fmt.Fprintf(&b, "#pragma comment(lib, \"legacy_stdio_definitions.lib\")\n")
		fmt.Fprintf(&b, "extern int %s();\nint main(void) { return %s(); }\n", fn, fn)
		return b.String()
	}
	fmt.Fprintf(&b, "extern char %s();\nint main(void) { return %s(); }\n", fn, fn)
	return b.String()
}
