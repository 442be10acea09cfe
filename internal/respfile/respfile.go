// Package respfile expands a single "@file" positional argument into a
// line-separated argument vector, used by the engine CLI to dodge
// platform argument-length limits on large dependency lists.
package respfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Expand rewrites argv: if it is exactly one argument starting with "@",
// the named file is read and split on newlines into the returned argument
// vector. Any other argv is returned unchanged.
func Expand(argv []string) ([]string, error) {
	if len(argv) != 1 || !strings.HasPrefix(argv[0], "@") {
		return argv, nil
	}

	path := strings.TrimPrefix(argv[0], "@")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading response file %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading response file %s: %w", path, err)
	}
	return out, nil
}
