// Package dispatch is the Check Dispatcher: it evaluates gating
// requirements, composes the probe source for a check's kind, drives the
// Probe Runner, and applies value selection to produce the final Result.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/periareon/cc-autocheck/internal/check"
	"github.com/periareon/cc-autocheck/internal/depstore"
	"github.com/periareon/cc-autocheck/internal/eval"
	"github.com/periareon/cc-autocheck/internal/probe"
	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/toolchain"
	"github.com/periareon/cc-autocheck/internal/value"
)

// Run is the single entry point: it either produces a skipped Result
// (unmet requirement, no probe executed) or dispatches to the probe runner
// and applies value selection.
func Run(ctx context.Context, chk *check.Check, cfg *toolchain.Config, deps *depstore.Store, scratchDir string) (result.Result, error) {
	if len(chk.Requires) > 0 {
		met, err := eval.EvaluateRequirement(chk.Requires, deps.Lookup)
		if err != nil {
			return result.Result{}, fmt.Errorf("evaluating requirements for %s: %w", chk.Name, err)
		}
		if !met {
			return result.Skipped(chk.Name, chk.Define, chk.Subst, chk.Kind.String(), chk.Unquote), nil
		}
	}

	probeSuccess := true
	ranProcess := false
	exitCode := 0

	if chk.Kind.RunsProbe() {
		runner := probe.NewRunner(cfg, scratchDir)
		artifacts := probe.NewArtifactSet(scratchDir, chk.Name)
		defer artifacts.Close()

		language := chk.EffectiveLanguage()
		defines, err := renderCompileDefines(chk.CompileDefines, deps)
		if err != nil {
			return result.Result{}, fmt.Errorf("rendering compile_defines for %s: %w", chk.Name, err)
		}

		switch chk.Kind {
		case check.KindFunction:
			source := defines + probe.FunctionProbeSource(cfg, symbolForFunction(chk))
			outcome, _, runErr := runner.CompileAndLink(ctx, artifacts, language, source, "")
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = outcome.Success

		case check.KindLib:
			source := defines + probe.FunctionProbeSource(cfg, symbolForLib(chk))
			outcome, _, runErr := runner.CompileAndLink(ctx, artifacts, language, source, chk.Library)
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = outcome.Success

		case check.KindType, check.KindDecl, check.KindMember:
			source := defines + chk.Code
			outcome, runErr := runner.CompileOnly(ctx, artifacts, language, source)
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = outcome.Success

		case check.KindCompile:
			source := defines + chk.Code
			outcome, runErr := runner.CompileOnly(ctx, artifacts, language, source)
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = outcome.Success

		case check.KindLink:
			source := defines + chk.Code
			outcome, _, runErr := runner.CompileAndLink(ctx, artifacts, language, source, "")
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = outcome.Success

		case check.KindSizeof, check.KindAlignof, check.KindComputeInt, check.KindEndian:
			source := defines + chk.Code
			compileOutcome, exePath, runErr := runner.CompileAndLink(ctx, artifacts, language, source, "")
			if runErr != nil {
				return result.Result{}, fmt.Errorf("probing %s: %w", chk.Name, runErr)
			}
			probeSuccess = compileOutcome.Success
			if probeSuccess {
				runOutcome, runErr := runner.Run(ctx, exePath)
				if runErr != nil {
					return result.Result{}, fmt.Errorf("running probe %s: %w", chk.Name, runErr)
				}
				probeSuccess = runOutcome.Success
				ranProcess = runOutcome.RanProcess
				exitCode = runOutcome.ExitCode
			}

		default:
			return result.Result{}, fmt.Errorf("check %s: kind %s cannot probe", chk.Name, chk.Kind)
		}
	}

	// Decl's success bit is always true (invariant 5); the compile outcome
	// only feeds the rendered value, not the Result's success flag.
	reportedSuccess := probeSuccess
	if chk.Kind == check.KindDecl {
		reportedSuccess = true
	}

	val, err := selectValue(chk, deps, probeSuccess, ranProcess, exitCode)
	if err != nil {
		return result.Result{}, fmt.Errorf("selecting value for %s: %w", chk.Name, err)
	}

	return result.Result{
		Name:    chk.Name,
		Define:  chk.Define,
		Subst:   chk.Subst,
		Success: reportedSuccess,
		Value:   val,
		Kind:    chk.Kind.String(),
		Unquote: chk.Unquote,
	}, nil
}

// selectValue implements spec 4.G's value-selection algorithm.
func selectValue(chk *check.Check, deps *depstore.Store, probeSuccess, ranProcess bool, exitCode int) (value.Value, error) {
	if chk.Condition != "" {
		cond, err := eval.EvaluateCondition(chk.Condition, deps.Lookup)
		if err != nil {
			return value.Value{}, err
		}
		if cond {
			return chk.DefineValue, nil
		}
		return chk.DefineValueFail, nil
	}

	if ranProcess {
		return value.FromString(strconv.Itoa(exitCode)), nil
	}

	if probeSuccess {
		if chk.DefineValue.Present() {
			return chk.DefineValue, nil
		}
		return value.FromString("1"), nil
	}
	if chk.DefineValueFail.Present() {
		return chk.DefineValueFail, nil
	}
	return value.FromString("0"), nil
}

// renderCompileDefines produces the #define lines prepended to probe
// source for names listed in compile_defines, using each referenced
// dependency's stored value; absent values produce no line.
func renderCompileDefines(names []string, deps *depstore.Store) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	var b strings.Builder
	for _, name := range names {
		r, ok := deps.Lookup(name)
		if !ok {
			return "", fmt.Errorf("compile_defines references unknown identifier %q", name)
		}
		if !r.Value.Present() {
			continue
		}
		fmt.Fprintf(&b, "#define %s %s\n", name, r.Value.AsString())
	}
	return b.String(), nil
}

// symbolForFunction derives the bare function symbol from the check's
// cache name, following the ac_cv_func_<symbol> convention the glossary
// names; checks whose name does not follow the convention use the name
// itself, letting the frontend supply an already-bare symbol.
func symbolForFunction(chk *check.Check) string {
	return strings.TrimPrefix(chk.Name, "ac_cv_func_")
}

// symbolForLib derives the bare function symbol from the ac_cv_lib_<lib>_
// <symbol> convention used for AC_CHECK_LIB-style cache variables.
func symbolForLib(chk *check.Check) string {
	prefix := "ac_cv_lib_" + chk.Library + "_"
	if strings.HasPrefix(chk.Name, prefix) {
		return strings.TrimPrefix(chk.Name, prefix)
	}
	return chk.Name
}
