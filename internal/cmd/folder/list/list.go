package list

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams"
)

// ListOptions holds options for the folder list command.
type ListOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	JSON bool
}

// Entry is one row of the folder listing.
type Entry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// NewCmdList creates the folder list command.
func NewCmdList(f *cmdutil.Factory, runF func(context.Context, *ListOptions) error) *cobra.Command {
	opts := &ListOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered folders",
		Example: `  # List folders and whether their directories exist
  tplresolve folder list

  # Machine-readable output
  tplresolve folder list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return listRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output folders as JSON")

	return cmd
}

func listRun(_ context.Context, opts *ListOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(cfg.Folders))
	for _, f := range cfg.FolderPaths() {
		info, err := os.Stat(f.Path)
		entries = append(entries, Entry{Name: f.Name, Path: f.Path, Exists: err == nil && info.IsDir()})
	}

	if opts.JSON {
		return cmdutil.WriteJSON(ios.Out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(ios.ErrOut, "No folders registered.")
		cmdutil.PrintNextSteps(ios, "Run 'tplresolve folder add NAME PATH' to register one")
		return nil
	}

	tp := ios.NewTablePrinter("NAME", "PATH", "EXISTS")
	for _, e := range entries {
		exists := cs.Green("yes")
		if !e.Exists {
			exists = cs.Yellow("no")
		}
		tp.AddRow(e.Name, e.Path, exists)
	}
	return tp.Render()
}
