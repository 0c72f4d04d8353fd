package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmd/resolve"
	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/resolver"
	"github.com/schmitthub/tplresolve/internal/watch"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)
	Engine    func() (*engine.Engine, error)

	Names    []string
	Strategy string
	Ignore   []string
	// Debounce overrides watch.debounce from the config when non-nil.
	Debounce *time.Duration
}

// NewCmdWatch creates the watch command.
func NewCmdWatch(f *cmdutil.Factory, runF func(context.Context, *WatchOptions) error) *cobra.Command {
	opts := &WatchOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
		Engine:    f.Engine,
	}

	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch NAME...",
		Short: "Resolve templates and re-resolve them when template files change",
		Long: `Resolves the given names, then watches the template directory and every
registered folder directory. When a template file is created, removed or
renamed the resolution cache is cleared and the names are resolved again.
Only names whose result changed are printed after the first pass.

Editing the contents of an existing template never changes where a name
resolves to and is ignored.

Press Ctrl+C to stop.`,
		Example: `  # Watch an overridable module template
  tplresolve watch blog/post/index

  # Ignore generated files and react immediately
  tplresolve watch --ignore '**/*.gen.tmpl' --debounce 0 blog/post/index`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Names = args
			if cmd.Flags().Changed("debounce") {
				if debounce < 0 {
					return cmdutil.FlagErrorf("--debounce must not be negative")
				}
				opts.Debounce = &debounce
			}
			if opts.Strategy != "" {
				if _, err := resolver.ParseStrategy(opts.Strategy); err != nil {
					return cmdutil.FlagErrorWrap(err)
				}
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return watchRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "Resolution strategy: direct or reverse-fallback (default from config)")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Glob patterns (relative to a template root) to ignore")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Coalesce bursts of changes (default from config)")

	return cmd
}

func watchRun(ctx context.Context, opts *WatchOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	e, err := opts.Engine()
	if err != nil {
		return err
	}
	strategy, err := cfg.ResolverStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	// The invalidator clears the cache from its own goroutine.
	r, err := resolver.New(strategy, resolver.WithSynchronized())
	if err != nil {
		return err
	}
	e.SetResolver(r)

	debounce := cfg.Watch.Debounce
	if opts.Debounce != nil {
		debounce = *opts.Debounce
	}

	inv, err := watch.New(watch.Config{
		Engine:   e,
		Cache:    r,
		Debounce: debounce,
		Ignore:   opts.Ignore,
	})
	if err != nil {
		return err
	}
	defer inv.Close()

	last := make(map[string]resolve.Result, len(opts.Names))
	for _, res := range resolve.ResolveAll(e, r, opts.Names) {
		printResult(ios, res)
		last[res.Name] = res
	}

	for _, root := range inv.Roots() {
		fmt.Fprintf(ios.ErrOut, "%s watching %s\n", cs.InfoIcon(), root)
	}
	logger.Info().Strs("roots", inv.Roots()).Dur("debounce", debounce).Msg("watching template directories")

	errCh := make(chan error, 1)
	go func() { errCh <- inv.Run(ctx) }()

	for change := range inv.Changes() {
		logger.Debug().Strs("paths", change.Paths).Msg("template cache invalidated")
		fmt.Fprintf(ios.ErrOut, "%s %s\n", cs.InfoIcon(), cs.Muted(describeChange(change)))

		for _, res := range resolve.ResolveAll(e, r, opts.Names) {
			prev := last[res.Name]
			last[res.Name] = res
			if prev.Path == res.Path && prev.Error == res.Error {
				continue
			}
			printResult(ios, res)
		}
	}

	return <-errCh
}

func printResult(ios *iostreams.IOStreams, res resolve.Result) {
	cs := ios.ColorScheme()
	if res.Error != "" {
		fmt.Fprintf(ios.Out, "%s %s: %s\n", cs.FailureIcon(), res.Name, res.Error)
		return
	}
	fmt.Fprintf(ios.Out, "%s %s -> %s\n", cs.SuccessIcon(), res.Name, res.Path)
}

func describeChange(c watch.Change) string {
	switch len(c.Paths) {
	case 0:
		return "events were dropped, cache cleared"
	case 1:
		return fmt.Sprintf("%s changed, cache cleared", c.Paths[0])
	default:
		return fmt.Sprintf("%d paths changed, cache cleared", len(c.Paths))
	}
}
