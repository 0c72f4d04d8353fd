package cmdutil

import (
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// Factory provides shared dependencies for CLI commands.
// It is a dependency injection container: the struct defines what
// dependencies exist (the contract), while internal/cmd/factory
// wires the real implementations.
//
// Closure fields are set by the factory constructor and use lazy
// initialization internally. Commands extract only the fields they
// need into per-command Options structs.
type Factory struct {
	// Configuration from flags (set before command execution)
	ConfigPath string
	Debug      bool

	// Version info (set at build time via ldflags)
	Version string
	Commit  string

	IOStreams *iostreams.IOStreams

	// Config loads tplresolve.yaml once per invocation.
	Config func() (*config.Config, error)
	// Engine builds the template engine from Config once per invocation.
	Engine func() (*engine.Engine, error)
	// Resolver creates a fresh resolver. An empty strategy uses the
	// configured one.
	Resolver func(strategy string) (resolver.Resolver, error)
}
