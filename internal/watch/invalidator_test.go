package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

type fixture struct {
	global string
	local  string
	engine *engine.Engine
	res    *resolver.ReverseFallback
}

// newFixture lays out an application directory and a module folder on disk,
// with the module shipping post/index.tmpl and no application override.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	f := &fixture{
		global: filepath.Join(root, "templates"),
		local:  filepath.Join(root, "Blog", "templates"),
		res:    resolver.NewReverseFallback(resolver.WithSynchronized()),
	}
	writeFile(t, filepath.Join(f.local, "post", "index.tmpl"))
	require.NoError(t, os.MkdirAll(f.global, 0o755))

	e, err := engine.New(f.global,
		engine.WithFolder("blog", f.local),
		engine.WithResolver(f.res),
	)
	require.NoError(t, err)
	f.engine = e
	return f
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func start(t *testing.T, cfg Config) *Invalidator {
	t.Helper()

	inv, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- inv.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("Run did not return after cancel")
		}
	})
	return inv
}

func waitChange(t *testing.T, inv *Invalidator) Change {
	t.Helper()

	select {
	case c := <-inv.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for invalidation")
		return Change{}
	}
}

func assertNoChange(t *testing.T, inv *Invalidator, wait time.Duration) {
	t.Helper()

	select {
	case c := <-inv.Changes():
		t.Fatalf("unexpected invalidation: %v", c.Paths)
	case <-time.After(wait):
	}
}

func TestInvalidator_OverrideCreated(t *testing.T) {
	f := newFixture(t)

	path, err := f.engine.Path("blog/post/index")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.local, "post", "index.tmpl"), path)
	require.Len(t, f.res.Cache(), 1)

	inv := start(t, Config{Engine: f.engine, Cache: f.res, Debounce: 50 * time.Millisecond})

	override := filepath.Join(f.global, "blog", "post", "index.tmpl")
	writeFile(t, override)

	c := waitChange(t, inv)
	assert.NotEmpty(t, c.Paths)
	assert.Empty(t, f.res.Cache())

	path, err = f.engine.Path("blog/post/index")
	require.NoError(t, err)
	assert.Equal(t, override, path, "the new application override wins")
}

func TestInvalidator_Removal(t *testing.T) {
	f := newFixture(t)
	override := filepath.Join(f.global, "blog", "post", "index.tmpl")
	writeFile(t, override)

	path, err := f.engine.Path("blog::post/index")
	require.NoError(t, err)
	assert.Equal(t, override, path)

	inv := start(t, Config{Engine: f.engine, Cache: f.res})

	require.NoError(t, os.Remove(override))
	c := waitChange(t, inv)
	assert.Contains(t, c.Paths, override)

	path, err = f.engine.Path("blog::post/index")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.local, "post", "index.tmpl"), path)
}

func TestInvalidator_IgnoresContentWrites(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Path("blog/post/index")
	require.NoError(t, err)

	inv := start(t, Config{Engine: f.engine, Cache: f.res})

	existing := filepath.Join(f.local, "post", "index.tmpl")
	require.NoError(t, os.WriteFile(existing, []byte("edited"), 0o644))

	assertNoChange(t, inv, 300*time.Millisecond)
	assert.Len(t, f.res.Cache(), 1)
}

func TestInvalidator_IgnorePatterns(t *testing.T) {
	f := newFixture(t)

	inv := start(t, Config{
		Engine: f.engine,
		Cache:  f.res,
		Ignore: []string{"**/*.bak"},
	})

	writeFile(t, filepath.Join(f.global, "index.tmpl.swp"))
	writeFile(t, filepath.Join(f.global, "index.tmpl.bak"))
	assertNoChange(t, inv, 300*time.Millisecond)

	writeFile(t, filepath.Join(f.global, "index.tmpl"))
	waitChange(t, inv)
}

func TestInvalidator_NewDirectoriesAreWatched(t *testing.T) {
	f := newFixture(t)

	inv := start(t, Config{Engine: f.engine, Cache: f.res})

	dir := filepath.Join(f.global, "shop")
	require.NoError(t, os.Mkdir(dir, 0o755))
	waitChange(t, inv)

	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)

	writeFile(t, filepath.Join(dir, "cart.tmpl"))
	c := waitChange(t, inv)
	assert.Contains(t, c.Paths, filepath.Join(dir, "cart.tmpl"))
}

func TestInvalidator_Debounce(t *testing.T) {
	f := newFixture(t)

	inv := start(t, Config{Engine: f.engine, Cache: f.res, Debounce: 200 * time.Millisecond})

	for _, name := range []string{"a.tmpl", "b.tmpl", "c.tmpl"} {
		writeFile(t, filepath.Join(f.global, name))
		time.Sleep(10 * time.Millisecond)
	}

	c := waitChange(t, inv)
	assert.Len(t, c.Paths, 3)
	assertNoChange(t, inv, 400*time.Millisecond)
}

func TestRoots(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.AddFolder("missing", filepath.Join(t.TempDir(), "nope")))
	require.NoError(t, f.engine.AddFolder("nested", filepath.Join(f.global, "nested")))
	require.NoError(t, os.MkdirAll(filepath.Join(f.global, "nested"), 0o755))

	assert.Equal(t, []string{f.global, f.local}, Roots(f.engine))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	e, err := engine.New(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	_, err = New(Config{Engine: e, Cache: resolver.NewDirect()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the template directories exist")

	f := newFixture(t)
	_, err = New(Config{Engine: f.engine, Cache: f.res, Ignore: []string{"[unclosed"}})
	require.Error(t, err)
}

func TestRun_Twice(t *testing.T) {
	f := newFixture(t)
	inv := start(t, Config{Engine: f.engine, Cache: f.res})

	// Let the first Run claim the invalidator.
	time.Sleep(50 * time.Millisecond)
	err := inv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	inv, err := New(Config{Engine: f.engine, Cache: f.res})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- inv.Run(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, inv.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	_, open := <-inv.Changes()
	assert.False(t, open, "Changes is closed when Run returns")
}
