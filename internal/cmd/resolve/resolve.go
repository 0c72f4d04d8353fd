package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// ResolveOptions holds options for the resolve command.
type ResolveOptions struct {
	IOStreams *iostreams.IOStreams
	Engine    func() (*engine.Engine, error)
	Resolver  func(strategy string) (resolver.Resolver, error)

	Names    []string
	Strategy string
	JSON     bool
	Verbose  bool
}

// Result is the per-name outcome reported by resolve and watch.
type Result struct {
	Name       string   `json:"name"`
	Path       string   `json:"path,omitempty"`
	Key        string   `json:"key,omitempty"`
	Folder     string   `json:"folder,omitempty"`
	Inferred   bool     `json:"inferred,omitempty"`
	Cached     bool     `json:"cached"`
	Size       int64    `json:"size,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewCmdResolve creates the resolve command.
func NewCmdResolve(f *cmdutil.Factory, runF func(context.Context, *ResolveOptions) error) *cobra.Command {
	opts := &ResolveOptions{
		IOStreams: f.IOStreams,
		Engine:    f.Engine,
		Resolver:  f.Resolver,
	}

	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Resolve template names to file paths",
		Long: `Resolves one or more template names to the file they refer to and prints
the resulting paths, one per line.

Names may carry an explicit folder ("blog::post/index"), start with a folder
alias as their first path segment ("blog/post/index"), or be absolute paths.
Names are resolved in order with a single resolver, so a name that repeats is
answered from the cache.

When a name cannot be resolved every candidate path that was tried is listed
and the command exits with status 1.`,
		Example: `  # Resolve a template with the configured strategy
  tplresolve resolve blog/post/index

  # Force the direct strategy and show how each name was resolved
  tplresolve resolve --strategy direct -v blog::post/index layout

  # Machine-readable output
  tplresolve resolve --json blog/post/index`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Names = args
			if opts.JSON && opts.Verbose {
				return cmdutil.FlagErrorf("--json and --verbose cannot be used together")
			}
			if opts.Strategy != "" {
				if _, err := resolver.ParseStrategy(opts.Strategy); err != nil {
					return cmdutil.FlagErrorWrap(err)
				}
			}
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return resolveRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "Resolution strategy: direct or reverse-fallback (default from config)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show cache state, inferred folder and probed candidates")

	return cmd
}

func resolveRun(_ context.Context, opts *ResolveOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	e, err := opts.Engine()
	if err != nil {
		return err
	}
	r, err := opts.Resolver(opts.Strategy)
	if err != nil {
		return err
	}
	e.SetResolver(r)

	results := ResolveAll(e, r, opts.Names)

	var failed []string
	for _, res := range results {
		if res.Error != "" {
			failed = append(failed, res.Name)
		}
	}

	if opts.JSON {
		if err := cmdutil.WriteJSON(ios.Out, results); err != nil {
			return err
		}
		return cmdutil.UnresolvedError(failed)
	}

	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(ios.ErrOut, "%s %s\n", cs.FailureIcon(), res.Error)
			continue
		}
		if opts.Verbose {
			printVerbose(ios, res)
			continue
		}
		fmt.Fprintln(ios.Out, res.Path)
	}

	if len(failed) > 0 {
		logger.Debug().Strs("failed", failed).Int("total", len(results)).Msg("resolution failed")
	}
	return cmdutil.UnresolvedError(failed)
}

// ResolveAll resolves names in order against e with r, recording failures in
// the result instead of stopping.
func ResolveAll(e *engine.Engine, r resolver.Resolver, names []string) []Result {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, resolveOne(e, r, name))
	}
	return results
}

func resolveOne(e *engine.Engine, r resolver.Resolver, name string) Result {
	out := Result{Name: name}

	n, err := e.NewName(name)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	res, err := r.Resolve(n)
	if err != nil {
		out.Error = err.Error()
		var nf *engine.TemplateNotFoundError
		if errors.As(err, &nf) {
			out.Candidates = nf.Paths
		}
		return out
	}

	out.Path = res.Path
	out.Key = res.Key
	out.Cached = res.Cached
	out.Candidates = res.Candidates
	if res.Name != nil {
		out.Folder = res.Name.FolderName()
		out.Inferred = !n.HasFolder() && res.Name.HasFolder()
	}
	if info, err := e.Stat(res.Path); err == nil {
		out.Size = info.Size()
	}
	return out
}

func printVerbose(ios *iostreams.IOStreams, res Result) {
	cs := ios.ColorScheme()

	fmt.Fprintf(ios.Out, "%s %s\n", cs.SuccessIcon(), cs.Bold(res.Name))
	fmt.Fprintf(ios.Out, "  path:   %s\n", res.Path)
	fmt.Fprintf(ios.Out, "  key:    %s\n", res.Key)
	if res.Folder != "" {
		folder := res.Folder
		if res.Inferred {
			folder += cs.Muted(" (inferred)")
		}
		fmt.Fprintf(ios.Out, "  folder: %s\n", folder)
	}
	fmt.Fprintf(ios.Out, "  cached: %t\n", res.Cached)
	fmt.Fprintf(ios.Out, "  size:   %s\n", units.HumanSize(float64(res.Size)))
	if len(res.Candidates) > 0 {
		fmt.Fprintf(ios.Out, "  tried:  %s\n", strings.Join(res.Candidates, cs.Muted(", ")))
	}
}
