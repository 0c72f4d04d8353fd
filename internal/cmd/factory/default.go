package factory

import (
	"sync"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// New creates a fully-wired Factory with lazy-initialized dependency closures.
// Called exactly once at the CLI entry point (internal/tplresolve/cmd.go).
// Tests should NOT import this package; construct &cmdutil.Factory{} directly.
func New(version, commit string) *cmdutil.Factory {
	ios := iostreams.New()
	if !ios.IsOutputTTY() {
		ios.SetColorEnabled(false)
	}

	f := &cmdutil.Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: ios,
	}

	// --- Lazy dependency closures ---

	// Config. f.ConfigPath is read on first use, after flag parsing.
	var (
		configOnce sync.Once
		configData *config.Config
		configErr  error
	)
	f.Config = func() (*config.Config, error) {
		configOnce.Do(func() {
			configData, configErr = config.Load(f.ConfigPath)
		})
		return configData, configErr
	}

	// Engine
	var (
		engineOnce sync.Once
		eng        *engine.Engine
		engineErr  error
	)
	f.Engine = func() (*engine.Engine, error) {
		engineOnce.Do(func() {
			cfg, err := f.Config()
			if err != nil {
				engineErr = err
				return
			}
			eng, engineErr = cfg.NewEngine(nil)
		})
		return eng, engineErr
	}

	// Resolver. Each call returns a resolver with its own empty cache.
	f.Resolver = func(strategy string) (resolver.Resolver, error) {
		cfg, err := f.Config()
		if err != nil {
			return nil, err
		}
		s, err := cfg.ResolverStrategy(strategy)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("strategy", string(s)).Bool("synchronized", cfg.Cache.Synchronized).Msg("creating resolver")
		return cfg.NewResolver(s)
	}

	return f
}
