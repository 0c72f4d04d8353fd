package engine

import (
	"path/filepath"
	"strings"
)

// Folder is a named alias to a template directory.
type Folder struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Folders is an insertion-ordered registry of template folders.
type Folders struct {
	order  []string
	byName map[string]Folder
}

// NewFolders returns an empty registry.
func NewFolders() *Folders {
	return &Folders{byName: make(map[string]Folder)}
}

// ValidateFolderName checks that name can be used as a folder alias.
// Aliases appear both before the "::" marker and as the first "/" segment of
// a name, so neither separator may occur inside one.
func ValidateFolderName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &FolderError{Folder: name, Reason: "folder name cannot be empty"}
	case strings.Contains(name, NamespaceSeparator):
		return &FolderError{Folder: name, Reason: "folder name cannot contain " + NamespaceSeparator}
	case strings.ContainsAny(name, `/\`):
		return &FolderError{Folder: name, Reason: "folder name cannot contain a path separator"}
	}
	return nil
}

// Add registers a folder. Registering the same alias twice is an error.
func (f *Folders) Add(name, path string) error {
	if err := ValidateFolderName(name); err != nil {
		return err
	}
	if path == "" {
		return &FolderError{Folder: name, Reason: "folder path cannot be empty"}
	}
	if _, ok := f.byName[name]; ok {
		return &FolderError{Folder: name, Reason: "folder already exists"}
	}
	f.byName[name] = Folder{Name: name, Path: filepath.Clean(path)}
	f.order = append(f.order, name)
	return nil
}

// Remove unregisters a folder.
func (f *Folders) Remove(name string) error {
	if _, ok := f.byName[name]; !ok {
		return &FolderError{Folder: name, Reason: "folder was not found"}
	}
	delete(f.byName, name)
	for i, n := range f.order {
		if n == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the folder registered under name.
func (f *Folders) Get(name string) (*Folder, bool) {
	folder, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return &folder, true
}

// Exists reports whether name is a registered folder.
func (f *Folders) Exists(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// All returns the registered folders in registration order.
func (f *Folders) All() []Folder {
	out := make([]Folder, 0, len(f.order))
	for _, n := range f.order {
		out = append(out, f.byName[n])
	}
	return out
}

// Len returns the number of registered folders.
func (f *Folders) Len() int {
	return len(f.order)
}
