// Command cc-resolve is the Template Resolver CLI: it merges define/subst/
// cache-only Result files, splices inline content, rewrites #define/#undef
// and @X@ placeholders, applies literal substitutions, and writes the
// rendered header atomically.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/periareon/cc-autocheck/internal/template"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cc-resolve: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		templatePath string
		outputPath   string
		modeStr      = "defines"
		defineFiles  []string
		substFiles   []string
		cacheFiles   []string
		inline       = map[string]string{}
		literals     = map[string]string{}
	)

	i := 0
	next := func(flagName string) (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flagName)
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		switch args[i] {
		case "--template":
			v, err := next("--template")
			if err != nil {
				return err
			}
			templatePath = v
		case "--output":
			v, err := next("--output")
			if err != nil {
				return err
			}
			outputPath = v
		case "--mode":
			v, err := next("--mode")
			if err != nil {
				return err
			}
			modeStr = v
		case "--define-result":
			v, err := next("--define-result")
			if err != nil {
				return err
			}
			defineFiles = append(defineFiles, v)
		case "--subst-result":
			v, err := next("--subst-result")
			if err != nil {
				return err
			}
			substFiles = append(substFiles, v)
		case "--cache-result":
			v, err := next("--cache-result")
			if err != nil {
				return err
			}
			cacheFiles = append(cacheFiles, v)
		case "--inline":
			needle, err := next("--inline")
			if err != nil {
				return err
			}
			filePath, err := next("--inline")
			if err != nil {
				return fmt.Errorf("--inline requires a needle and a file")
			}
			content, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading --inline file %s: %w", filePath, err)
			}
			inline[needle] = string(content)
		case "--subst":
			name, err := next("--subst")
			if err != nil {
				return err
			}
			value, err := next("--subst")
			if err != nil {
				return fmt.Errorf("--subst requires a name and a value")
			}
			literals[name] = value
		default:
			return fmt.Errorf("unrecognized argument %q", args[i])
		}
	}

	if templatePath == "" || outputPath == "" {
		return fmt.Errorf("--template and --output are required")
	}

	mode, err := template.ParseMode(modeStr)
	if err != nil {
		return err
	}

	templateBytes, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", templatePath, err)
	}

	out, err := template.Resolve(template.Inputs{
		Template:    string(templateBytes),
		Mode:        mode,
		DefineFiles: defineFiles,
		SubstFiles:  substFiles,
		CacheFiles:  cacheFiles,
		Inline:      inline,
		Literals:    literals,
	})
	if err != nil {
		return err
	}

	return atomic.WriteFile(outputPath, strings.NewReader(out))
}
