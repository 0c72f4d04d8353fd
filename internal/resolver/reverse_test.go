package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/engine/enginetest"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

func newReverse(t *testing.T, opts ...engine.Option) (*resolver.ReverseFallback, *engine.Engine) {
	t.Helper()

	r := resolver.NewReverseFallback()
	e, _ := enginetest.NewBlogEngine(t, append([]engine.Option{engine.WithResolver(r)}, opts...)...)
	return r, e
}

func resolve(t *testing.T, r resolver.Resolver, e *engine.Engine, name string) (*resolver.Resolution, error) {
	t.Helper()

	n, err := e.NewName(name)
	require.NoError(t, err)
	return r.Resolve(n)
}

func TestReverseFallback_Priority(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantPath string
		wantBody string
	}{
		{
			name:     "default directory wins for explicit folder",
			template: "blog::post/index",
			wantPath: "/app/templates/blog/post/index.phtml",
			wantBody: "GLOBAL/blog/post/index",
		},
		{
			name:     "default directory wins for inferred folder",
			template: "blog/post/show",
			wantPath: "/app/templates/blog/post/show.phtml",
			wantBody: "GLOBAL/blog/post/show",
		},
		{
			name:     "explicit folder falls back to folder path",
			template: "blog::post/read",
			wantPath: "/app/Blog/templates/post/read.phtml",
			wantBody: "LOCAL/blog/post/read",
		},
		{
			name:     "inferred folder falls back to folder path",
			template: "blog/post/read",
			wantPath: "/app/Blog/templates/post/read.phtml",
			wantBody: "LOCAL/blog/post/read",
		},
		{
			name:     "no folder",
			template: "orphan",
			wantPath: "/app/templates/orphan.phtml",
			wantBody: "GLOBAL/orphan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, e := newReverse(t)

			res, err := resolve(t, r, e, tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, res.Path)
			assert.Equal(t, tt.wantBody, readTemplate(t, e, res.Path))
		})
	}
}

func TestReverseFallback_KeyNormalization(t *testing.T) {
	r, e := newReverse(t)

	first, err := resolve(t, r, e, "blog::post/index")
	require.NoError(t, err)
	assert.Equal(t, "blog/post/index", first.Key)
	assert.False(t, first.Cached)

	second, err := resolve(t, r, e, "blog/post/index")
	require.NoError(t, err)
	assert.True(t, second.Cached, "both spellings share one cache entry")
	assert.Equal(t, first.Path, second.Path)

	assert.Equal(t, map[string]string{"blog/post/index": first.Path}, r.Cache())
}

func TestReverseFallback_CacheHitKeepsInferredFolder(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"inferred twice", []string{"blog/post/index", "blog/post/index"}},
		{"explicit then inferred", []string{"blog::post/index", "blog/post/index"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, e := newReverse(t)

			first, err := resolve(t, r, e, tt.names[0])
			require.NoError(t, err)
			assert.False(t, first.Cached)

			second, err := resolve(t, r, e, tt.names[1])
			require.NoError(t, err)
			require.True(t, second.Cached)

			assert.Equal(t, "blog", second.Name.FolderName())
			assert.Equal(t, "post/index", second.Name.Stem())
			assert.Equal(t, tt.names[1], second.Name.Name())
		})
	}
}

func TestReverseFallback_CacheSurvivesDeletion(t *testing.T) {
	r := resolver.NewReverseFallback()
	e, fs := enginetest.NewBlogEngine(t, engine.WithResolver(r))

	path, err := e.Path("blog::post/index")
	require.NoError(t, err)

	enginetest.RemoveFile(t, fs, path)

	again, err := e.Path("blog::post/index")
	require.NoError(t, err)
	assert.Equal(t, path, again)

	r.ClearCache()

	// The override is gone, so the module template is found instead.
	after, err := e.Path("blog::post/index")
	require.NoError(t, err)
	assert.Equal(t, "/app/Blog/templates/post/index.phtml", after)
}

func TestReverseFallback_NotFound(t *testing.T) {
	r, e := newReverse(t)

	_, err := resolve(t, r, e, "blog/post/missing")
	require.Error(t, err)

	var nf *engine.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "blog/post/missing", nf.Name)
	assert.Equal(t, []string{
		"/app/templates/blog/post/missing.phtml",
		"/app/Blog/templates/post/missing.phtml",
	}, nf.Paths)
	assert.Equal(t,
		`The template "blog/post/missing" could not be found at the following paths: `+
			`["/app/templates/blog/post/missing.phtml", "/app/Blog/templates/post/missing.phtml"]`,
		err.Error())
	assert.Empty(t, r.Cache())
}

func TestReverseFallback_InferenceIsIdempotent(t *testing.T) {
	r, e := newReverse(t)

	assert.False(t, r.Processed("blog/post/missing"))

	_, first := resolve(t, r, e, "blog/post/missing")
	require.Error(t, first)
	assert.True(t, r.Processed("blog/post/missing"))

	_, second := resolve(t, r, e, "blog/post/missing")
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error(), "retries probe the same candidates")
}

func TestReverseFallback_InferredName(t *testing.T) {
	r, e := newReverse(t)

	n, err := e.NewName("blog/post/read")
	require.NoError(t, err)

	res, err := r.Resolve(n)
	require.NoError(t, err)
	assert.Equal(t, "blog", res.Name.FolderName())
	assert.Equal(t, "post/read", res.Name.Stem())
	assert.False(t, n.HasFolder(), "caller's name is not modified")
}

func TestReverseFallback_UnregisteredFolder(t *testing.T) {
	r := resolver.NewReverseFallback()
	e, fs := enginetest.NewBlogEngine(t, engine.WithResolver(r))

	_, err := resolve(t, r, e, "shop::cart")
	require.Error(t, err)

	var nf *engine.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"/app/templates/shop/cart.phtml"}, nf.Paths)

	enginetest.WriteFile(t, fs, "/app/templates/shop/cart.phtml", "GLOBAL/shop/cart")

	res, err := resolve(t, r, e, "shop/cart")
	require.NoError(t, err)
	assert.Equal(t, "/app/templates/shop/cart.phtml", res.Path)
}

func TestReverseFallback_Absolute(t *testing.T) {
	tests := []struct {
		name           string
		template       string
		wantPath       string
		wantErr        bool
		wantCandidates []string
	}{
		{
			name:     "without extension",
			template: "/app/templates/orphan",
			wantPath: "/app/templates/orphan.phtml",
			wantCandidates: []string{
				"/app/templates/orphan",
				"/app/templates/orphan.phtml",
			},
		},
		{
			name:     "with extension",
			template: "/app/templates/orphan.phtml",
			wantPath: "/app/templates/orphan.phtml",
			wantCandidates: []string{
				"/app/templates/orphan.phtml",
				"/app/templates/orphan.phtml.phtml",
			},
		},
		{
			name:     "namespace marker is part of the path",
			template: "/app/templates::orphan",
			wantErr:  true,
			wantCandidates: []string{
				"/app/templates::orphan",
				"/app/templates::orphan.phtml",
			},
		},
		{
			name:     "outside any template directory",
			template: "/app/Blog/templates/post/read",
			wantPath: "/app/Blog/templates/post/read.phtml",
			wantCandidates: []string{
				"/app/Blog/templates/post/read",
				"/app/Blog/templates/post/read.phtml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, e := newReverse(t)

			res, err := resolve(t, r, e, tt.template)
			if tt.wantErr {
				var nf *engine.TemplateNotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, tt.wantCandidates, nf.Paths)
				assert.Empty(t, r.Cache())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, res.Path)
			assert.Equal(t, tt.wantCandidates, res.Candidates)
			assert.Equal(t, tt.template, res.Key)
			assert.False(t, r.Processed(tt.template), "absolute names skip inference")
		})
	}
}

func TestReverseFallback_NoDirectory(t *testing.T) {
	r := resolver.NewReverseFallback()
	e, _ := enginetest.NewBlogEngine(t, engine.WithResolver(r))
	e.SetDirectory("")

	path, err := e.Path("blog/post/read")
	require.NoError(t, err)
	assert.Equal(t, "/app/Blog/templates/post/read.phtml", path)

	_, err = e.Path("orphan")
	require.Error(t, err)

	var nf *engine.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, nf.Paths)
}

func TestReverseFallback_DuplicateCandidatesCollapse(t *testing.T) {
	r := resolver.NewReverseFallback()
	e, _ := enginetest.NewBlogEngine(t,
		engine.WithResolver(r),
		engine.WithFolder("mirror", "/app/templates/mirror"),
	)

	_, err := e.Path("mirror::nothing")
	require.Error(t, err)

	var nf *engine.TemplateNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"/app/templates/mirror/nothing.phtml"}, nf.Paths)
}
