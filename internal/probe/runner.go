// Package probe synthesises probe source, invokes the configured toolchain
// to compile / link / run it, and reports success plus an optional integer
// exit code — never forking concurrent probes within one check, and always
// releasing its scratch artifacts through a scoped-acquisition wrapper.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/periareon/cc-autocheck/internal/diag"
	"github.com/periareon/cc-autocheck/internal/toolchain"
)

// Runner drives one probe invocation against a Toolchain Config.
type Runner struct {
	Config     *toolchain.Config
	ScratchDir string
}

// NewRunner constructs a Runner scoped to one probe invocation.
func NewRunner(cfg *toolchain.Config, scratchDir string) *Runner {
	return &Runner{Config: cfg, ScratchDir: scratchDir}
}

// Outcome is the observable result of one probe run.
type Outcome struct {
	// Success is the compile/link (or, for run-kinds, the process launch)
	// outcome.
	Success bool
	// RanProcess reports whether the probe executable was actually invoked.
	RanProcess bool
	// ExitCode is the probe's exit status, only meaningful when RanProcess
	// is true.
	ExitCode int
}

// CompileOnly compiles source to an object file without linking, used by
// Type/Decl/Member/Compile kinds whose outcome never depends on a linker.
func (r *Runner) CompileOnly(ctx context.Context, artifacts *ArtifactSet, language, source string) (Outcome, error) {
	sourcePath := artifacts.Path(sourceSuffix(language))
	objPath := artifacts.Path(".o")

	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return Outcome{}, fmt.Errorf("writing probe source: %w", err)
	}

	compiler, args := compileArgs(r.Config, language, sourcePath, objPath)
	ok, err := r.invoke(ctx, compiler, args)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Success: ok}, nil
}

// CompileAndLink compiles source to an object file and then links it with
// the configured linker (falling back to the compiler when none is
// configured), used by Function/Lib/Link kinds and by every
// run-kind. The two-step shape exercises the linker configuration
// separately from compilation, matching the toolchain config's distinct
// compiler and linker fields.
func (r *Runner) CompileAndLink(ctx context.Context, artifacts *ArtifactSet, language, source, library string) (Outcome, string, error) {
	sourcePath := artifacts.Path(sourceSuffix(language))
	objPath := artifacts.Path(".o")
	exeSuffix := ""
	if isWindowsHost() {
		exeSuffix = ".exe"
	}
	exePath := artifacts.Path(exeSuffix)

	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return Outcome{}, "", fmt.Errorf("writing probe source: %w", err)
	}

	compiler, compileArgv := compileArgs(r.Config, language, sourcePath, objPath)
	ok, err := r.invoke(ctx, compiler, compileArgv)
	if err != nil {
		return Outcome{}, "", err
	}
	if !ok {
		return Outcome{Success: false}, exePath, nil
	}

	linker, linkArgv := linkArgs(r.Config, language, []string{objPath}, exePath, library)
	ok, err = r.invoke(ctx, linker, linkArgv)
	if err != nil {
		return Outcome{}, "", err
	}
	return Outcome{Success: ok}, exePath, nil
}

// Run executes a compiled probe executable, reporting its exit code. A
// non-zero or failed launch is data, not an engine error.
func (r *Runner) Run(ctx context.Context, exePath string) (Outcome, error) {
	diagLevel := diag.CurrentLevel()

	cmd := exec.CommandContext(ctx, exePath)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	if diagLevel == diag.Verbose {
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
		diag.Logger().Debug("exec", "command", quoteArgs([]string{exePath}))
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err == nil {
		return Outcome{Success: true, RanProcess: true, ExitCode: 0}, nil
	}
	if code, ok := exitCodeFromError(err); ok {
		return Outcome{Success: true, RanProcess: true, ExitCode: code}, nil
	}
	// Process never started (missing binary, permission denied, etc.) is a
	// probe failure, not a structural error: report it as a failed run.
	return Outcome{Success: false, RanProcess: false}, nil
}

func (r *Runner) invoke(ctx context.Context, command string, args []string) (bool, error) {
	diagLevel := diag.CurrentLevel()

	path := command
	if isWindowsHost() {
		path = shortPath(path)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if diagLevel == diag.Verbose {
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if diagLevel != diag.Silent {
		diag.Logger().Info("exec", "command", quoteArgs(append([]string{command}, args...)))
	}

	if err := cmd.Run(); err != nil {
		if _, ok := exitCodeFromError(err); ok {
			return false, nil
		}
		return false, fmt.Errorf("invoking %s: %w", command, err)
	}
	return true, nil
}

func sourceSuffix(language string) string {
	if language == "cpp" {
		return ".cpp"
	}
	return ".c"
}

func isWindowsHost() bool {
	return runtime.GOOS == "windows"
}
