package engine_test

import (
	"errors"
	"testing"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/engine/enginetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	e, err := engine.New("")
	require.NoError(t, err)

	assert.Empty(t, e.Directory())
	assert.Equal(t, engine.DefaultFileExtension, e.FileExtension())
	assert.Zero(t, e.Folders().Len())
	assert.NotNil(t, e.Resolver())
}

func TestNew_FolderOptionError(t *testing.T) {
	_, err := engine.New("/tpl",
		engine.WithFolder("blog", "/a"),
		engine.WithFolder("blog", "/b"),
	)
	require.Error(t, err)
	var folderErr *engine.FolderError
	assert.ErrorAs(t, err, &folderErr)
}

func TestEngine_SetFileExtension(t *testing.T) {
	e, err := engine.New("/tpl/", engine.WithFileExtension(".html"))
	require.NoError(t, err)

	assert.Equal(t, "html", e.FileExtension())
	assert.Equal(t, "/tpl", e.Directory())
}

func TestEngine_IsFile(t *testing.T) {
	e, _ := enginetest.NewBlogEngine(t)

	assert.True(t, e.IsFile("/app/templates/orphan.phtml"))
	assert.False(t, e.IsFile("/app/templates/blog"), "directories are not templates")
	assert.False(t, e.IsFile("/app/templates/missing.phtml"))
	assert.False(t, e.IsFile(""))
}

func TestEngine_DefaultResolver(t *testing.T) {
	e, _ := enginetest.NewBlogEngine(t)

	path, err := e.Path("blog::post/read")
	require.NoError(t, err)
	assert.Equal(t, "/app/Blog/templates/post/read.phtml", path)

	assert.True(t, e.Exists("orphan"))
	assert.False(t, e.Exists("blog::post/edit"))

	_, err = e.Path("blog::post/edit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrTemplateNotFound))

	var nf *engine.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "blog::post/edit", nf.Name)
	assert.Equal(t, []string{"/app/Blog/templates/post/edit.phtml"}, nf.Paths)
}

func TestEngine_SetResolver(t *testing.T) {
	e, _ := enginetest.NewBlogEngine(t)

	var seen string
	e.SetResolver(engine.PathResolverFunc(func(n *engine.Name) (string, error) {
		seen = n.Name()
		return "/fixed", nil
	}))

	path, err := e.Path("anything")
	require.NoError(t, err)
	assert.Equal(t, "/fixed", path)
	assert.Equal(t, "anything", seen)

	e.SetResolver(nil)
	assert.False(t, e.Exists("anything"))
}

func TestIsTemplateNotFound(t *testing.T) {
	err := &engine.TemplateNotFoundError{Name: "x"}
	assert.True(t, engine.IsTemplateNotFound(err))
	assert.False(t, engine.IsTemplateNotFound(errors.New("x")))
	assert.Equal(t, `template "x" not found`, err.Error())
}
