package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

// sanitizePattern matches characters the spec requires replaced with "_" in
// an artifact base name: / \ : * ? " < > |
var sanitizePattern = regexp.MustCompile(`[/\\:*?"<>|]`)

func sanitize(name string) string {
	return sanitizePattern.ReplaceAllString(name, "_")
}

// ArtifactSet owns every scratch file a single probe invocation creates: the
// synthesized source, the object file, and (when linked) the executable. It
// is the scoped-acquisition wrapper spec 4.F/5 requires: Close removes every
// tracked path on every exit path, including a panic, once deferred
// immediately after construction.
type ArtifactSet struct {
	dir   string
	base  string
	paths []string
}

// NewArtifactSet derives a globally unique base name from the check's cache
// name (sanitized) plus a uuid suffix, so concurrent frontend-spawned
// invocations targeting the same directory never collide.
func NewArtifactSet(dir, cacheName string) *ArtifactSet {
	base := fmt.Sprintf("%s_%s", sanitize(cacheName), uuid.NewString())
	return &ArtifactSet{dir: dir, base: base}
}

// Path returns (and tracks for cleanup) a scratch path with the given
// suffix, e.g. ".c", ".o", "" (executable).
func (a *ArtifactSet) Path(suffix string) string {
	p := filepath.Join(a.dir, a.base+suffix)
	a.paths = append(a.paths, p)
	return p
}

// Close removes every tracked artifact, recovering from and re-panicking
// after a panic so cleanup still runs on that exit path too.
func (a *ArtifactSet) Close() {
	if r := recover(); r != nil {
		a.removeAll()
		panic(r)
	}
	a.removeAll()
}

func (a *ArtifactSet) removeAll() {
	for _, p := range a.paths {
		_ = os.Remove(p)
	}
}
