package resolver

import (
	"strings"

	"github.com/schmitthub/tplresolve/internal/engine"
)

// Segments is a folder/file decomposition of a template name.
type Segments struct {
	Folder string
	File   string
}

// inference records the outcome of first-segment folder inference for a
// cache key. Applied is false when the name had no second segment.
type inference struct {
	Segments
	Applied bool
}

// CacheKey returns the reverse-fallback cache key for a template name: every
// namespace marker is replaced by "/" so that "blog::post/index" and
// "blog/post/index" share one entry.
func CacheKey(name string) string {
	return strings.ReplaceAll(name, engine.NamespaceSeparator, "/")
}

// SplitFirstSegment splits s on its first "/". ok is false when there is no
// non-empty segment on both sides.
func SplitFirstSegment(s string) (Segments, bool) {
	folder, file, found := strings.Cut(s, "/")
	if !found || folder == "" || file == "" {
		return Segments{}, false
	}
	return Segments{Folder: folder, File: file}, true
}

// inferFolder applies first-segment folder inference to a name without an
// explicit folder. The split for a key is computed once and remembered in
// processed, whatever its outcome, so retries of an unresolved name see the
// same decomposition without re-running inference.
func inferFolder(processed Store[inference], name *engine.Name, key string) (*engine.Name, bool) {
	if name.HasFolder() {
		return name, false
	}

	inf, seen := processed.Get(key)
	if !seen {
		segs, ok := SplitFirstSegment(name.Stem())
		inf = inference{Segments: segs, Applied: ok}
		processed.Put(key, inf)
	}
	if !inf.Applied {
		return name, false
	}
	return name.WithFolder(inf.Folder, inf.File), !seen
}
