package show

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams"
)

// ShowOptions holds options for the config show command.
type ShowOptions struct {
	IOStreams *iostreams.IOStreams
	Config    func() (*config.Config, error)

	JSON bool
}

// Effective is the resolved configuration reported by --json.
type Effective struct {
	Source        string            `json:"source"`
	Directory     string            `json:"directory"`
	FileExtension string            `json:"file_extension"`
	Strategy      string            `json:"strategy"`
	Folders       map[string]string `json:"folders"`
	Synchronized  bool              `json:"cache_synchronized"`
	Debounce      string            `json:"watch_debounce"`
	LogsDir       string            `json:"logs_dir"`
}

// NewCmdShow creates the config show command.
func NewCmdShow(f *cmdutil.Factory, runF func(context.Context, *ShowOptions) error) *cobra.Command {
	opts := &ShowOptions{
		IOStreams: f.IOStreams,
		Config:    f.Config,
	}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults and TPLRESOLVE_* environment
overrides are applied. The YAML output can be saved as a tplresolve.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return showRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the configuration with resolved paths as JSON")

	return cmd
}

func showRun(_ context.Context, opts *ShowOptions) error {
	ios := opts.IOStreams

	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	if opts.JSON {
		eff := Effective{
			Source:        cfg.Path(),
			Directory:     cfg.DirectoryPath(),
			FileExtension: cfg.FileExtension,
			Strategy:      cfg.Strategy,
			Folders:       make(map[string]string, len(cfg.Folders)),
			Synchronized:  cfg.Cache.Synchronized,
			Debounce:      cfg.Watch.Debounce.String(),
			LogsDir:       cfg.LogsDir(),
		}
		for _, f := range cfg.FolderPaths() {
			eff.Folders[f.Name] = f.Path
		}
		return cmdutil.WriteJSON(ios.Out, eff)
	}

	if cfg.Path() != "" {
		fmt.Fprintf(ios.Out, "# %s\n", cfg.Path())
	} else {
		fmt.Fprintln(ios.Out, "# defaults (no tplresolve.yaml found)")
	}
	encoded, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = ios.Out.Write(encoded)
	return err
}
