package probe

import "strings"

// quoteArg quotes an argument containing whitespace so the assembled shell
// string parses it as one token. Command construction stays data-driven (a
// vector of argument strings) with this as the single shell-escape step, so
// the MSVC vs POSIX divergence stays localised to command.go.
func quoteArg(arg string) string {
	if !strings.ContainsAny(arg, " \t") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// quoteArgs quotes every argument needing it and joins them into one shell
// string for diagnostic echo; the actual exec.Command invocation still
// passes the unquoted argument vector, matching how exec.Cmd itself handles
// quoting for the real subprocess.
func quoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quoteArg(a)
	}
	return strings.Join(quoted, " ")
}
