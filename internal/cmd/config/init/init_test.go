package init

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams/iostreamstest"
)

func TestNewCmdInit(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: tio.IOStreams, ConfigPath: "/tmp/x.yaml"}

	var gotOpts *InitOptions
	cmd := NewCmdInit(f, func(_ context.Context, opts *InitOptions) error {
		gotOpts = opts
		return nil
	})
	cmd.SetArgs([]string{"--force", "--directory", "views", "--strategy", "direct"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, gotOpts)
	assert.True(t, gotOpts.Force)
	assert.Equal(t, "views", gotOpts.Directory)
	assert.Equal(t, "direct", gotOpts.Strategy)
	assert.Equal(t, "/tmp/x.yaml", gotOpts.ConfigPath())
}

func newOptions(t *testing.T) (*InitOptions, *iostreamstest.TestIOStreams, string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.ConfigDirEnv, filepath.Join(dir, "config-home"))

	tio := iostreamstest.New()
	return &InitOptions{
		IOStreams:  tio.IOStreams,
		ConfigPath: func() string { return "" },
	}, tio, dir
}

func TestInitRun_CreatesDefaults(t *testing.T) {
	opts, tio, dir := newOptions(t)

	require.NoError(t, initRun(context.Background(), opts))

	path := filepath.Join(dir, config.FileName)
	assert.FileExists(t, path)
	assert.Contains(t, tio.ErrBuf.String(), "Created "+path)
	assert.Contains(t, tio.ErrBuf.String(), "Next Steps:")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "templates", cfg.Directory)
	assert.Equal(t, "reverse-fallback", cfg.Strategy)
}

func TestInitRun_Flags(t *testing.T) {
	opts, _, dir := newOptions(t)
	opts.Directory = "views"
	opts.Strategy = "direct"

	require.NoError(t, initRun(context.Background(), opts))

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "views", cfg.Directory)
	assert.Equal(t, "direct", cfg.Strategy)
}

func TestInitRun_InvalidStrategy(t *testing.T) {
	opts, _, dir := newOptions(t)
	opts.Strategy = "sideways"

	err := initRun(context.Background(), opts)
	var flagErr *cmdutil.FlagError
	require.ErrorAs(t, err, &flagErr)
	assert.NoFileExists(t, filepath.Join(dir, config.FileName))
}

func TestInitRun_ExistingFile(t *testing.T) {
	opts, tio, dir := newOptions(t)
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("directory: keep\n"), 0o644))

	err := initRun(context.Background(), opts)
	assert.ErrorIs(t, err, cmdutil.SilentError)
	assert.Contains(t, tio.ErrBuf.String(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "directory: keep\n", string(data))

	opts.Force = true
	require.NoError(t, initRun(context.Background(), opts))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "directory: templates")
}

func TestInitRun_ExplicitPath(t *testing.T) {
	opts, _, dir := newOptions(t)
	target := filepath.Join(dir, "nested", "custom.yaml")
	opts.ConfigPath = func() string { return target }

	require.NoError(t, initRun(context.Background(), opts))
	assert.FileExists(t, target)
}
