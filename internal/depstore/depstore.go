// Package depstore loads the named result files the frontend supplies as a
// check's dependencies into a lookup keyed by cache, define, and subst
// name.
package depstore

import (
	"fmt"

	"github.com/periareon/cc-autocheck/internal/result"
	"github.com/periareon/cc-autocheck/internal/resultio"
)

// Ref is one (lookup_name, file_path) pair as supplied by the frontend via
// repeated --dep flags.
type Ref struct {
	Name string
	Path string
}

// Store is the loaded, three-key-indexed dependency lookup.
type Store struct {
	byKey map[string]result.Result
}

// Lookup resolves an identifier by trying cache-name, then define-name,
// then subst-name — the order spec 4.E's grammar evaluator relies on.
func (s *Store) Lookup(ident string) (result.Result, bool) {
	r, ok := s.byKey[ident]
	return r, ok
}

// Load reads every referenced result file and merges their entries into one
// Store. A duplicate key mapping to a content-unequal Result is a
// structural error; an agreeing duplicate is a no-op.
func Load(refs []Ref) (*Store, error) {
	byKey := make(map[string]result.Result)

	for _, ref := range refs {
		entries, err := resultio.Read(ref.Path)
		if err != nil {
			return nil, fmt.Errorf("loading dependency %s (%s): %w", ref.Name, ref.Path, err)
		}
		r, ok := entries[ref.Name]
		if !ok {
			return nil, fmt.Errorf("dependency file %s does not contain entry %q", ref.Path, ref.Name)
		}

		for _, key := range keysFor(r) {
			if err := result.Merge(byKey, key, r); err != nil {
				return nil, fmt.Errorf("dependency %s: %w", ref.Name, err)
			}
		}
	}

	return &Store{byKey: byKey}, nil
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
