package init

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schmitthub/tplresolve/internal/cmdutil"
	"github.com/schmitthub/tplresolve/internal/config"
	"github.com/schmitthub/tplresolve/internal/iostreams"
	"github.com/schmitthub/tplresolve/internal/logger"
)

// InitOptions holds options for the config init command.
type InitOptions struct {
	IOStreams  *iostreams.IOStreams
	ConfigPath func() string

	Force     bool
	Directory string
	Strategy  string
}

// NewCmdInit creates the config init command.
func NewCmdInit(f *cmdutil.Factory, runF func(context.Context, *InitOptions) error) *cobra.Command {
	opts := &InitOptions{
		IOStreams:  f.IOStreams,
		ConfigPath: func() string { return f.ConfigPath },
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tplresolve.yaml with default settings",
		Long: `Creates tplresolve.yaml in the working directory (or at --config) with the
default settings. An existing file is left untouched unless --force is given.`,
		Example: `  # Create tplresolve.yaml in the current directory
  tplresolve config init

  # Start from the direct strategy with templates under views/
  tplresolve config init --directory views --strategy direct

  # Overwrite an existing file
  tplresolve config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return initRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().StringVar(&opts.Directory, "directory", "", "Default template directory (default \"templates\")")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "Resolution strategy (default \"reverse-fallback\")")

	return cmd
}

func initRun(_ context.Context, opts *InitOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	cfg := config.Default()
	if opts.Directory != "" {
		cfg.Directory = opts.Directory
	}
	if opts.Strategy != "" {
		cfg.Strategy = opts.Strategy
	}

	validator := config.NewValidator()
	if err := validator.Validate(cfg); err != nil {
		return cmdutil.FlagErrorWrap(err)
	}

	err := cfg.Write(config.WriteOptions{Path: opts.ConfigPath(), Safe: !opts.Force})
	var exists *config.ConfigExistsError
	if errors.As(err, &exists) {
		fmt.Fprintf(ios.ErrOut, "%s %s already exists\n", cs.FailureIcon(), exists.Path)
		cmdutil.PrintNextSteps(ios, "Run 'tplresolve config init --force' to overwrite it")
		return cmdutil.SilentError
	}
	if err != nil {
		return err
	}
	logger.Debug().Str("path", cfg.Path()).Msg("configuration written")

	fmt.Fprintf(ios.ErrOut, "%s Created %s\n", cs.SuccessIcon(), cfg.Path())
	cmdutil.PrintNextSteps(ios,
		fmt.Sprintf("Put templates in %s", cfg.DirectoryPath()),
		"Run 'tplresolve folder add NAME PATH' to register module templates",
		"Run 'tplresolve resolve NAME' to check where a template resolves",
	)
	return nil
}
