package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/logger"
)

// ReverseFallback searches in the opposite order of the engine default: a
// name with a folder is first looked up in the default directory under a
// sub-directory named after the folder, and only then in the folder's own
// directory.
//
//	engine: directory /app/templates, folder partials -> /mod/templates
//	"partials::pagination" and "partials/pagination" both try
//	  1. /app/templates/partials/pagination.tmpl
//	  2. /mod/templates/pagination.tmpl
//
// Modules can ship their templates next to their code under a folder alias,
// and an application overrides any of them by dropping a file with the same
// relative path into its own template directory.
type ReverseFallback struct {
	cacheable
	processed Store[inference]
}

// NewReverseFallback creates a ReverseFallback resolver.
func NewReverseFallback(opts ...Option) *ReverseFallback {
	o := buildOptions(opts)
	return &ReverseFallback{
		cacheable: cacheable{cache: o.cache},
		processed: o.processed,
	}
}

// Strategy returns StrategyReverseFallback.
func (r *ReverseFallback) Strategy() Strategy { return StrategyReverseFallback }

// ResolvePath implements engine.PathResolver.
func (r *ReverseFallback) ResolvePath(name *engine.Name) (string, error) {
	res, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Resolve returns the cached path for name's normalized key, or probes the
// reverse-fallback candidates and caches the first regular file found. Folder
// inference is applied on cache hits too, so Resolution.Name always carries
// the decomposition the path was found with.
func (r *ReverseFallback) Resolve(name *engine.Name) (*Resolution, error) {
	key := CacheKey(name.Name())

	resolved := name
	if !name.IsAbs() {
		var inferred bool
		resolved, inferred = inferFolder(r.processed, name, key)
		if inferred {
			logger.Debug().
				Str("template", name.Name()).
				Str("folder", resolved.FolderName()).
				Str("file", resolved.Stem()).
				Msg("folder inferred from first segment")
		}
	}

	if path, ok := r.GetFromCache(key); ok {
		logger.Debug().Str("template", name.Name()).Str("key", key).Str("path", path).Msg("template path cache hit")
		return &Resolution{Path: path, Key: key, Name: resolved, Cached: true}, nil
	}

	var candidates []string
	if name.IsAbs() {
		candidates = absoluteCandidates(name)
	} else {
		candidates = reverseCandidates(resolved)
	}

	gen := r.currentGeneration()
	if path, ok := probe(name.Engine(), candidates); ok {
		if !r.addIfCurrent(gen, key, path) {
			logger.Debug().Str("template", name.Name()).Msg("cache cleared during resolution, not caching")
		}
		logger.Debug().Str("template", name.Name()).Str("key", key).Str("path", path).Msg("template path resolved")
		return &Resolution{Path: path, Key: key, Name: resolved, Candidates: candidates}, nil
	}

	logger.Debug().Str("template", name.Name()).Strs("candidates", candidates).Msg("template not found")
	return nil, &engine.TemplateNotFoundError{
		Name:  name.Name(),
		Paths: candidates,
		Message: fmt.Sprintf("The template %q could not be found at the following paths: [%s]",
			key, quoteJoin(candidates)),
	}
}

// Processed reports whether folder inference has already run for key.
func (r *ReverseFallback) Processed(key string) bool {
	_, ok := r.processed.Get(key)
	return ok
}

func quoteJoin(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = strconv.Quote(p)
	}
	return strings.Join(quoted, ", ")
}
