package config

import (
	"fmt"

	"github.com/go-git/go-billy/v6"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// NewEngine builds a template engine from the configuration. A nil fs probes
// the host filesystem.
func (c *Config) NewEngine(fs billy.Basic) (*engine.Engine, error) {
	opts := []engine.Option{engine.WithFileExtension(c.FileExtension)}
	if fs != nil {
		opts = append(opts, engine.WithFilesystem(fs))
	}
	for _, f := range c.FolderPaths() {
		opts = append(opts, engine.WithFolder(f.Name, f.Path))
	}

	e, err := engine.New(c.DirectoryPath(), opts...)
	if err != nil {
		return nil, fmt.Errorf("building template engine: %w", err)
	}
	return e, nil
}

// ResolverStrategy parses the configured strategy. override, when non-empty,
// takes precedence.
func (c *Config) ResolverStrategy(override string) (resolver.Strategy, error) {
	if override != "" {
		return resolver.ParseStrategy(override)
	}
	return resolver.ParseStrategy(c.Strategy)
}

// NewResolver creates the configured resolver.
func (c *Config) NewResolver(strategy resolver.Strategy) (resolver.Resolver, error) {
	var opts []resolver.Option
	if c.Cache.Synchronized {
		opts = append(opts, resolver.WithSynchronized())
	}
	return resolver.New(strategy, opts...)
}
