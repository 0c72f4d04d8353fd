package tplresolve

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/tplresolve/internal/cmd/factory"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams/iostreamstest"
)

func newFactory(t *testing.T) (*cmdutil.Factory, *iostreamstest.TestIOStreams, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.ConfigDirEnv, filepath.Join(dir, "config-home"))

	tio := iostreamstest.New()
	f := factory.New("1.2.3", "abc")
	f.IOStreams = tio.IOStreams
	return f, tio, dir
}

func writeTemplate(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("tpl"), 0o644))
}

func TestRun_Resolve(t *testing.T) {
	f, tio, dir := newFactory(t)
	global := filepath.Join(dir, "templates", "blog", "post", "index.tmpl")
	writeTemplate(t, global)
	writeTemplate(t, filepath.Join(dir, "Blog", "templates", "post", "read.tmpl"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName),
		[]byte("folders:\n  - name: blog\n    path: Blog/templates\n"), 0o644))

	code := run(context.Background(), f, []string{"resolve", "blog/post/index", "blog::post/read"})
	assert.Equal(t, exitOk, code, tio.ErrBuf.String())
	assert.Equal(t, global+"\n"+filepath.Join(dir, "Blog", "templates", "post", "read.tmpl")+"\n", tio.OutBuf.String())
}

func TestRun_NotFoundExitsOne(t *testing.T) {
	f, tio, _ := newFactory(t)

	code := run(context.Background(), f, []string{"resolve", "missing"})
	assert.Equal(t, exitError, code)
	assert.Contains(t, tio.ErrBuf.String(), "could not be found")
	assert.NotContains(t, tio.ErrBuf.String(), "SilentError")
	assert.NotContains(t, tio.ErrBuf.String(), "could not be resolved", "failures are reported once, by the command")
}

func TestRun_UsageError(t *testing.T) {
	f, tio, _ := newFactory(t)

	code := run(context.Background(), f, []string{"resolve"})
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, tio.ErrBuf.String(), "Error: requires at least 1 arg(s)")
	assert.Contains(t, tio.ErrBuf.String(), "Usage:")
}

func TestRun_FlagError(t *testing.T) {
	f, tio, _ := newFactory(t)

	code := run(context.Background(), f, []string{"resolve", "--strategy", "sideways", "x"})
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, tio.ErrBuf.String(), `unknown resolution strategy "sideways"`)
}

func TestRun_GeneralError(t *testing.T) {
	f, tio, dir := newFactory(t)

	code := run(context.Background(), f, []string{"--config", filepath.Join(dir, "nope.yaml"), "resolve", "x"})
	assert.Equal(t, exitError, code)
	assert.Contains(t, tio.ErrBuf.String(), "configuration file not found")
	assert.Contains(t, tio.ErrBuf.String(), "Run 'tplresolve resolve --help'")
}

func TestRun_Version(t *testing.T) {
	f, tio, _ := newFactory(t)

	code := run(context.Background(), f, []string{"version"})
	assert.Equal(t, exitOk, code)
	assert.Equal(t, "tplresolve version 1.2.3 (abc)\n", tio.OutBuf.String())
}

func TestIsCobraUsageError(t *testing.T) {
	assert.True(t, isCobraUsageError(errors.New(`unknown command "x" for "tplresolve"`)))
	assert.True(t, isCobraUsageError(errors.New("accepts 2 arg(s), received 1")))
	assert.False(t, isCobraUsageError(errors.New("configuration file not found: x")))
}
