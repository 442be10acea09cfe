// Package template implements the Template Resolver: it merges many Result
// files, splices labelled inline content, rewrites #define/#undef and @X@
// placeholders from the merged values, and finally applies literal
// string substitutions.
package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/resultio"
)

// Mode selects which classes of placeholder get rewritten.
type Mode int

const (
	ModeDefines Mode = iota
	ModeSubst
	ModeAll
)

// ParseMode resolves the CLI --mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "defines":
		return ModeDefines, nil
	case "subst":
		return ModeSubst, nil
	case "all":
		return ModeAll, nil
	default:
		return ModeDefines, fmt.Errorf("unknown template mode %q", s)
	}
}

// Inputs is everything the resolver needs to produce one rendered header.
type Inputs struct {
	Template    string
	Mode        Mode
	DefineFiles []string
	SubstFiles  []string
	CacheFiles  []string
	// Inline maps a splice marker (needle) to the file contents spliced in
	// its place, applied before any placeholder rewriting.
	Inline map[string]string
	// Literals maps a literal substring to its replacement, applied after
	// every other rewriting step.
	Literals map[string]string
}

var (
	undefPattern  = regexp.MustCompile(`^(\s*)#\s*undef\s+(\w+)\s*$`)
	definePattern = regexp.MustCompile(`^(\s*)#\s*define\s+(\w+)\b.*$`)
	substPattern  = regexp.MustCompile(`@(\w+)@`)
)

// Resolve merges the referenced Result files, splices inline content,
// rewrites placeholders per Mode, and applies literal substitutions.
func Resolve(in Inputs) (string, error) {
	merged, err := loadMerged(in.DefineFiles, in.SubstFiles, in.CacheFiles)
	if err != nil {
		return "", err
	}

	text := spliceInline(in.Template, in.Inline)

	switch in.Mode {
	case ModeDefines:
		text = rewriteDefines(text, merged)
	case ModeSubst:
		text = rewriteSubst(text, merged)
	case ModeAll:
		text = rewriteDefines(text, merged)
		text = rewriteSubst(text, merged)
	default:
		return "", fmt.Errorf("unknown template mode %d", in.Mode)
	}

	return applyLiteral(text, in.Literals), nil
}

// loadMerged reads every referenced Result file and merges all of their
// entries into one map keyed by cache name, define name, and subst name —
// a duplicate key mapping to a disagreeing Result is a structural error.
func loadMerged(defineFiles, substFiles, cacheFiles []string) (map[string]result.Result, error) {
	merged := make(map[string]result.Result)
	for _, group := range [][]string{defineFiles, substFiles, cacheFiles} {
		for _, path := range group {
			entries, err := resultio.Read(path)
			if err != nil {
				return nil, fmt.Errorf("loading template result file %s: %w", path, err)
			}
			for _, r := range entries {
				for _, key := range keysFor(r) {
					if err := result.Merge(merged, key, r); err != nil {
						return nil, fmt.Errorf("merging result file %s: %w", path, err)
					}
				}
			}
		}
	}
	return merged, nil
}

func keysFor(r result.Result) []string {
	keys := []string{r.Name}
	if r.Define != "" {
		keys = append(keys, r.Define)
	}
	if r.Subst != "" {
		keys = append(keys, r.Subst)
	}
	return keys
}

// spliceInline replaces every needle with its mapped file contents, in
// sorted-needle order so overlapping needles splice deterministically.
func spliceInline(text string, inline map[string]string) string {
	for _, needle := range sortedKeys(inline) {
		text = strings.ReplaceAll(text, needle, inline[needle])
	}
	return text
}

// applyLiteral replaces every literal substring with its replacement, in
// sorted-key order, run after every placeholder rewrite.
func applyLiteral(text string, literals map[string]string) string {
	for _, k := range sortedKeys(literals) {
		text = strings.ReplaceAll(text, k, literals[k])
	}
	return text
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rewriteDefines rewrites every #undef X / #define X ... line per the
// three-state rendering rules.
func rewriteDefines(text string, merged map[string]result.Result) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if m := undefPattern.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + renderDefine(m[2], merged)
			continue
		}
		if m := definePattern.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + renderDefine(m[2], merged)
		}
	}
	return strings.Join(lines, "\n")
}

// renderDefine implements spec 4.I's define-rewriting rules for one name.
func renderDefine(name string, merged map[string]result.Result) string {
	r, ok := merged[name]
	if !ok || !r.Value.Present() {
		return "/* #undef " + name + " */"
	}
	if r.Value.EmptyString() {
		if r.Unquote {
			return "#define " + name + " "
		}
		return "#define " + name + " /**/"
	}
	return "#define " + name + " " + r.Value.AsString()
}

// rewriteSubst replaces every @X@ occurrence with X's merged value.
// Names absent from the merged map are left untouched (unreferenced);
// names present but with an absent Value render as an empty string, since
// there is no #undef-equivalent placeholder form for subst tokens.
func rewriteSubst(text string, merged map[string]result.Result) string {
	return substPattern.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[1 : len(tok)-1]
		r, ok := merged[name]
		if !ok {
			return tok
		}
		if !r.Value.Present() {
			return ""
		}
		return r.Value.AsString()
	})
}
