// Package resultio writes and reads Result-file JSON atomically, shared by
// the check dispatcher (writer), the dependency loader, and the template
// resolver (readers).
package resultio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"

	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/schema"
)

// Write serializes r as `{name: entry}` and writes it to path atomically —
// to a temp path plus rename — so a killed process never leaves a
// truncated file that could be mistaken for a Result.
func Write(path string, r result.Result) error {
	data, err := result.MarshalOne(r)
	if err != nil {
		return fmt.Errorf("encoding result for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing result file %s: %w", path, err)
	}
	return nil
}

// Read loads a Result-file JSON object into a map keyed by cache name.
func Read(path string) (map[string]result.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}

	if err := schema.ValidateResult(data); err != nil {
		return nil, fmt.Errorf("validating result file %s: %w", path, err)
	}

	entries, err := result.DecodeMap(data)
	if err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}
	return entries, nil
}
