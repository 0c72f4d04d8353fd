package engine

import (
	"path/filepath"
	"strings"
)

// NamespaceSeparator separates an explicit folder alias from the file part of
// a template name, as in "blog::post/index".
const NamespaceSeparator = "::"

// Name is a parsed template name bound to the engine that parsed it.
//
// Names are immutable. Resolvers that decompose a name differently from the
// parser (first-segment folder inference) return a new Name via WithFolder
// rather than rewriting the caller's value.
type Name struct {
	engine *Engine
	name   string
	folder string
	stem   string
}

func parseName(e *Engine, name string) (*Name, error) {
	if name == "" {
		return nil, &InvalidNameError{Name: name, Reason: "the template name cannot be empty"}
	}

	n := &Name{engine: e, name: name}
	parts := strings.Split(name, NamespaceSeparator)
	switch len(parts) {
	case 1:
		n.stem = parts[0]
	case 2:
		if parts[0] == "" {
			return nil, &InvalidNameError{Name: name, Reason: "the folder alias cannot be empty"}
		}
		if parts[1] == "" {
			return nil, &InvalidNameError{Name: name, Reason: "the template file cannot be empty"}
		}
		n.folder, n.stem = parts[0], parts[1]
	default:
		return nil, &InvalidNameError{
			Name:   name,
			Reason: "do not use the folder namespace separator \"" + NamespaceSeparator + "\" more than once",
		}
	}
	return n, nil
}

// Name returns the template name exactly as it was supplied.
func (n *Name) Name() string { return n.name }

// Engine returns the engine the name was parsed by.
func (n *Name) Engine() *Engine { return n.engine }

// FolderName returns the folder alias, or "" when the name has none.
// The alias need not be registered with the engine.
func (n *Name) FolderName() string { return n.folder }

// HasFolder reports whether a folder alias is set.
func (n *Name) HasFolder() bool { return n.folder != "" }

// Folder returns the registered folder for the alias, or nil when no alias is
// set or the alias is not registered.
func (n *Name) Folder() *Folder {
	if n.folder == "" || n.engine == nil {
		return nil
	}
	f, ok := n.engine.Folders().Get(n.folder)
	if !ok {
		return nil
	}
	return f
}

// Stem returns the file part without the engine's file extension.
func (n *Name) Stem() string { return n.stem }

// File returns the file part with the engine's file extension appended.
func (n *Name) File() string {
	if n.engine == nil || n.engine.FileExtension() == "" {
		return n.stem
	}
	return n.stem + "." + n.engine.FileExtension()
}

// IsAbs reports whether the name is an absolute filesystem path.
func (n *Name) IsAbs() bool {
	return strings.HasPrefix(n.name, "/") || filepath.IsAbs(n.name)
}

// Path returns the engine's default location for the template: the registered
// folder's directory plus the file, or the default directory plus the file
// when no folder is set. An alias that is not registered is treated as a
// sub-directory of the default directory. Absolute names map to themselves
// with the file extension applied.
func (n *Name) Path() string {
	if n.IsAbs() && n.folder == "" {
		return n.File()
	}
	var dir string
	if n.engine != nil {
		dir = n.engine.Directory()
	}
	if n.folder == "" {
		return filepath.Join(dir, n.File())
	}
	if f := n.Folder(); f != nil {
		return filepath.Join(f.Path, n.File())
	}
	return filepath.Join(dir, n.folder, n.File())
}

// WithFolder returns a copy of n with its folder alias and file part replaced.
// The original name string is preserved.
func (n *Name) WithFolder(folder, stem string) *Name {
	c := *n
	c.folder = folder
	c.stem = stem
	return &c
}

func (n *Name) String() string { return n.name }
