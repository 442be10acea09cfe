// Command cc-check runs one configuration check: it loads a toolchain
// config, a check record, and zero or more named dependency Results, then
// dispatches the probe and writes the outcome atomically.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/periareon/cc-autocheck/internal/check"
	"github.com/periareon/cc-autocheck/internal/depstore"
	"github.com/periareon/cc-autocheck/internal/dispatch"
	"github.com/periareon/cc-autocheck/internal/resultio"
	"github.com/periareon/cc-autocheck/internal/respfile"
	"github.com/periareon/cc-autocheck/internal/toolchain"
)

// depFlag accumulates repeated --dep name=path arguments as a pflag.Value.
type depFlag struct {
	refs *[]depstore.Ref
}

func (d *depFlag) String() string {
	return ""
}

func (d *depFlag) Set(s string) error {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("--dep must be name=path, got %q", s)
	}
	*d.refs = append(*d.refs, depstore.Ref{Name: name, Path: path})
	return nil
}

func (d *depFlag) Type() string {
	return "name=path"
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cc-check: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	argv, err := respfile.Expand(argv)
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("cc-check", pflag.ContinueOnError)
	configPath := flags.String("config", "", "toolchain config JSON (required)")
	checkPath := flags.String("check", "", "check JSON (required)")
	resultsPath := flags.String("results", "", "output result JSON path (required)")
	var deps []depstore.Ref
	flags.Var(&depFlag{refs: &deps}, "dep", "name=path dependency result file (repeatable)")

	if err := flags.Parse(argv); err != nil {
		return err
	}
	if *configPath == "" || *checkPath == "" || *resultsPath == "" {
		return fmt.Errorf("--config, --check, and --results are required")
	}

	cfg, err := toolchain.Load(*configPath)
	if err != nil {
		return err
	}

	chk, err := check.Load(*checkPath)
	if err != nil {
		return err
	}

	store, err := depstore.Load(deps)
	if err != nil {
		return err
	}

	scratchDir, err := os.MkdirTemp("", "cc-check-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := dispatch.Run(ctx, chk, cfg, store, scratchDir)
	if err != nil {
		return err
	}

	return resultio.Write(*resultsPath, r)
}
