// Package resolver implements cached template path resolution strategies that
// plug into engine.Engine as its path-resolution hook.
//
// Two strategies share one contract and one positive-only cache:
//
//   - Direct probes the path the engine computes for a name.
//   - ReverseFallback looks in the default directory under the folder's alias
//     first and only then in the folder's own directory, inferring the folder
//     from the first path segment when no "::" marker is given.
package resolver

import (
	"fmt"
	"strings"

	"github.com/schmitthub/tplresolve/internal/engine"
)

// Strategy names a resolution search-order policy.
type Strategy string

const (
	StrategyDirect          Strategy = "direct"           // engine default location only
	StrategyReverseFallback Strategy = "reverse-fallback" // default directory first, folder as fallback
)

// Strategies lists the supported strategies.
var Strategies = []Strategy{StrategyDirect, StrategyReverseFallback}

// ParseStrategy converts a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(StrategyReverseFallback), "reverse":
		return StrategyReverseFallback, nil
	case string(StrategyDirect):
		return StrategyDirect, nil
	default:
		return "", fmt.Errorf("unknown resolution strategy %q (valid: %s, %s)", s, StrategyDirect, StrategyReverseFallback)
	}
}

// Resolution is the detailed outcome of a successful resolution.
type Resolution struct {
	// Path is the resolved template file.
	Path string `json:"path"`
	// Key is the cache key the path is stored under.
	Key string `json:"key"`
	// Name is the decomposition the path was resolved with. For the
	// reverse-fallback strategy it may carry an inferred folder that the
	// caller's name did not have.
	Name *engine.Name `json:"-"`
	// Cached is true when the path came from the cache without a probe.
	Cached bool `json:"cached"`
	// Candidates lists the paths probed, in order. Empty for cache hits.
	Candidates []string `json:"candidates,omitempty"`
}

// Resolver is implemented by every strategy.
type Resolver interface {
	engine.PathResolver
	Cacheable

	// Resolve resolves name and reports how.
	Resolve(name *engine.Name) (*Resolution, error)
	// Strategy returns the search-order policy.
	Strategy() Strategy
}

// New creates a resolver for strategy.
func New(strategy Strategy, opts ...Option) (Resolver, error) {
	switch strategy {
	case StrategyDirect:
		return NewDirect(opts...), nil
	case StrategyReverseFallback:
		return NewReverseFallback(opts...), nil
	default:
		return nil, fmt.Errorf("unknown resolution strategy %q", strategy)
	}
}

var (
	_ Resolver = (*Direct)(nil)
	_ Resolver = (*ReverseFallback)(nil)
)
