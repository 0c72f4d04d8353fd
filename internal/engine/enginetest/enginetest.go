// Package enginetest provides in-memory filesystems and engines for tests.
package enginetest

import (
	"path"
	"testing"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/stretchr/testify/require"
)

// NewFS returns a memfs populated with files, keyed by absolute slash path.
func NewFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	for p, content := range files {
		WriteFile(t, fs, p, content)
	}
	return fs
}

// WriteFile creates (or truncates) a file on fs, creating parent directories.
func WriteFile(t *testing.T, fs billy.Filesystem, p, content string) {
	t.Helper()

	require.NoError(t, fs.MkdirAll(path.Dir(p), 0o755), "failed to create %s", path.Dir(p))
	f, err := fs.Create(p)
	require.NoError(t, err, "failed to create %s", p)
	_, err = f.Write([]byte(content))
	require.NoError(t, err, "failed to write %s", p)
	require.NoError(t, f.Close(), "failed to close %s", p)
}

// RemoveFile deletes a file from fs.
func RemoveFile(t *testing.T, fs billy.Filesystem, p string) {
	t.Helper()
	require.NoError(t, fs.Remove(p), "failed to remove %s", p)
}

// BlogFixture mirrors a typical modular application layout:
//
//	/app/templates/blog/post/{index,edit,show}.phtml   (application overrides)
//	/app/templates/orphan.phtml
//	/app/Blog/templates/post/{index,read,show}.phtml   (module defaults)
var BlogFixture = map[string]string{
	"/app/templates/blog/post/index.phtml": "GLOBAL/blog/post/index",
	"/app/templates/blog/post/edit.phtml":  "GLOBAL/blog/post/edit",
	"/app/templates/blog/post/show.phtml":  "GLOBAL/blog/post/show",
	"/app/templates/orphan.phtml":          "GLOBAL/orphan",
	"/app/Blog/templates/post/index.phtml": "LOCAL/blog/post/index",
	"/app/Blog/templates/post/read.phtml":  "LOCAL/blog/post/read",
	"/app/Blog/templates/post/show.phtml":  "LOCAL/blog/post/show",
}

// NewBlogEngine returns an engine over BlogFixture with directory
// /app/templates, folder "blog" at /app/Blog/templates and extension "phtml".
func NewBlogEngine(t *testing.T, opts ...engine.Option) (*engine.Engine, billy.Filesystem) {
	t.Helper()

	fs := NewFS(t, BlogFixture)
	all := append([]engine.Option{
		engine.WithFilesystem(fs),
		engine.WithFileExtension("phtml"),
		engine.WithFolder("blog", "/app/Blog/templates"),
	}, opts...)
	e, err := engine.New("/app/templates", all...)
	require.NoError(t, err)
	return e, fs
}
