// Package engine holds the template engine surface that path resolvers plug
// into: the default template directory, the file extension convention, the
// folder registry, template name parsing and the file-existence probe.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/osfs"
)

// DefaultFileExtension is appended to template files when no extension is configured.
const DefaultFileExtension = "tmpl"

// PathResolver maps a parsed template name to an existing template file.
// Implementations return a *TemplateNotFoundError when nothing matches.
type PathResolver interface {
	ResolvePath(name *Name) (string, error)
}

// PathResolverFunc adapts a plain function to PathResolver.
type PathResolverFunc func(name *Name) (string, error)

func (f PathResolverFunc) ResolvePath(name *Name) (string, error) { return f(name) }

// Engine carries the configuration shared by every template name it parses.
type Engine struct {
	directory     string
	fileExtension string
	folders       *Folders
	fs            billy.Basic
	resolver      PathResolver
}

// Option configures an Engine.
type Option func(*Engine) error

// WithFileExtension sets the template file extension. A leading dot is
// ignored and "" disables extension handling.
func WithFileExtension(ext string) Option {
	return func(e *Engine) error {
		e.SetFileExtension(ext)
		return nil
	}
}

// WithFilesystem replaces the filesystem used for existence probes.
func WithFilesystem(fs billy.Basic) Option {
	return func(e *Engine) error {
		e.fs = fs
		return nil
	}
}

// WithResolver installs the path-resolution hook.
func WithResolver(r PathResolver) Option {
	return func(e *Engine) error {
		e.resolver = r
		return nil
	}
}

// WithFolder registers a folder.
func WithFolder(name, path string) Option {
	return func(e *Engine) error {
		return e.folders.Add(name, path)
	}
}

// New creates an engine rooted at directory. An empty directory means no
// default template directory is configured.
func New(directory string, opts ...Option) (*Engine, error) {
	e := &Engine{
		fileExtension: DefaultFileExtension,
		folders:       NewFolders(),
		fs:            osfs.New("/"),
	}
	e.SetDirectory(directory)
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Directory returns the default template directory, or "" if none is set.
func (e *Engine) Directory() string { return e.directory }

// SetDirectory changes the default template directory.
func (e *Engine) SetDirectory(dir string) {
	if dir == "" {
		e.directory = ""
		return
	}
	e.directory = filepath.Clean(dir)
}

// FileExtension returns the configured extension without a leading dot.
func (e *Engine) FileExtension() string { return e.fileExtension }

// SetFileExtension changes the template file extension.
func (e *Engine) SetFileExtension(ext string) {
	e.fileExtension = strings.TrimPrefix(ext, ".")
}

// Folders returns the folder registry.
func (e *Engine) Folders() *Folders { return e.folders }

// AddFolder registers a folder alias.
func (e *Engine) AddFolder(name, path string) error { return e.folders.Add(name, path) }

// RemoveFolder unregisters a folder alias.
func (e *Engine) RemoveFolder(name string) error { return e.folders.Remove(name) }

// SetResolver installs the path-resolution hook. nil restores the default.
func (e *Engine) SetResolver(r PathResolver) { e.resolver = r }

// Resolver returns the installed path-resolution hook.
func (e *Engine) Resolver() PathResolver {
	if e.resolver == nil {
		return PathResolverFunc(defaultResolvePath)
	}
	return e.resolver
}

// Filesystem returns the filesystem used for existence probes.
func (e *Engine) Filesystem() billy.Basic { return e.fs }

// NewName parses a template name against this engine.
func (e *Engine) NewName(name string) (*Name, error) {
	return parseName(e, name)
}

// Path parses name and resolves it through the installed resolver.
func (e *Engine) Path(name string) (string, error) {
	n, err := e.NewName(name)
	if err != nil {
		return "", err
	}
	return e.Resolver().ResolvePath(n)
}

// Exists reports whether name resolves to an existing template.
func (e *Engine) Exists(name string) bool {
	_, err := e.Path(name)
	return err == nil
}

// Stat returns file information for path on the engine's filesystem.
func (e *Engine) Stat(path string) (os.FileInfo, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving absolute path for %s: %w", path, err)
		}
		path = abs
	}
	return e.fs.Stat(path)
}

// IsFile reports whether a regular file exists at path.
func (e *Engine) IsFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := e.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// defaultResolvePath is the uncached hook used when no resolver is installed.
func defaultResolvePath(name *Name) (string, error) {
	path := name.Path()
	if name.Engine().IsFile(path) {
		return path, nil
	}
	return "", &TemplateNotFoundError{
		Name:    name.Name(),
		Paths:   []string{path},
		Message: fmt.Sprintf("The template %q could not be found at %q", name.Name(), path),
	}
}
