package resolver

import (
	"fmt"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/logger"
)

// Direct resolves a name to the single path the engine computes for it and
// caches the path under the name as given.
//
// This is useful when the same partial is rendered many times per page
// (table-header sort links, several paginators): the name is probed once.
type Direct struct {
	cacheable
}

// NewDirect creates a Direct resolver.
func NewDirect(opts ...Option) *Direct {
	o := buildOptions(opts)
	return &Direct{cacheable: cacheable{cache: o.cache}}
}

// Strategy returns StrategyDirect.
func (d *Direct) Strategy() Strategy { return StrategyDirect }

// ResolvePath implements engine.PathResolver.
func (d *Direct) ResolvePath(name *engine.Name) (string, error) {
	res, err := d.Resolve(name)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Resolve returns the cached path for name, or probes the engine's default
// location and caches it when a regular file exists there.
func (d *Direct) Resolve(name *engine.Name) (*Resolution, error) {
	key := name.Name()
	if path, ok := d.GetFromCache(key); ok {
		logger.Debug().Str("template", key).Str("path", path).Msg("template path cache hit")
		return &Resolution{Path: path, Key: key, Name: name, Cached: true}, nil
	}

	gen := d.currentGeneration()
	candidates := directCandidates(name)
	if path, ok := probe(name.Engine(), candidates); ok {
		if !d.addIfCurrent(gen, key, path) {
			logger.Debug().Str("template", key).Msg("cache cleared during resolution, not caching")
		}
		logger.Debug().Str("template", key).Str("path", path).Msg("template path resolved")
		return &Resolution{Path: path, Key: key, Name: name, Candidates: candidates}, nil
	}

	logger.Debug().Str("template", key).Strs("candidates", candidates).Msg("template not found")
	return nil, &engine.TemplateNotFoundError{
		Name:    key,
		Paths:   candidates,
		Message: fmt.Sprintf("The template %q could not be found at %q", key, candidates[0]),
	}
}
