package resolver

import (
	"path/filepath"

	"github.com/schmitthub/tplresolve/internal/engine"
)

// directCandidates is the engine's own default location for the name.
func directCandidates(name *engine.Name) []string {
	return []string{name.Path()}
}

// absoluteCandidates tries the path as given, then with the engine's file
// extension applied. Both are built from the raw name: a "::" marker inside
// an absolute name is part of the path, never a folder alias.
func absoluteCandidates(name *engine.Name) []string {
	raw := name.Name()
	withExt := raw
	if ext := name.Engine().FileExtension(); ext != "" {
		withExt = raw + "." + ext
	}
	return uniquePaths(raw, withExt)
}

// reverseCandidates builds the reverse-fallback search order:
//
//  1. {directory}/{folder alias}/{file}  folder set, directory configured
//  2. {folder path}/{file}               folder set and registered
//  3. {directory}/{file}                 no folder, directory configured
func reverseCandidates(name *engine.Name) []string {
	dir := name.Engine().Directory()
	file := name.File()

	var paths []string
	if name.HasFolder() {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, name.FolderName(), file))
		}
		if folder := name.Folder(); folder != nil {
			paths = append(paths, filepath.Join(folder.Path, file))
		}
	} else if dir != "" {
		paths = append(paths, filepath.Join(dir, file))
	}
	return uniquePaths(paths...)
}

// uniquePaths drops empty and repeated entries while keeping order, so no
// candidate is probed twice within one resolution.
func uniquePaths(paths ...string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// probe returns the first candidate that is an existing regular file.
func probe(e *engine.Engine, candidates []string) (string, bool) {
	for _, c := range candidates {
		if e.IsFile(c) {
			return c, true
		}
	}
	return "", false
}
